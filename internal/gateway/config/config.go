package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	Env       string
	Retrieval RetrievalConfig
	CORS      CORSConfig
	Failures  FailureCacheConfig
	// TelemetryRuns bounds how many runs /debug/run-logs remembers.
	TelemetryRuns int
}

type RetrievalConfig struct {
	Backend   string
	GitBinary string
	Timeout   time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type FailureCacheConfig struct {
	Size int
	TTL  time.Duration
}

var defaultAllowedOrigins = []string{
	"http://localhost",
	"http://localhost:3000",
	"http://127.0.0.1",
	"http://127.0.0.1:3000",
}

// Load reads .env (if present), command-line flags and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(os.Args[1:], os.Getenv)
}

// LoadFrom is Load with explicit arguments and environment lookup.
func LoadFrom(args []string, getenv func(string) string) (*Config, error) {
	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)
	port := fs.String("port", ":8000", "server port")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	env := func(key string) string { return strings.TrimSpace(getenv(key)) }

	if envPort := env("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	timeout, err := durationEnv(env("CLONE_TIMEOUT"), 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CLONE_TIMEOUT: %w", err)
	}
	// Zero leaves the failure cache off; every request clones again.
	ttl, err := durationEnv(env("FAILURE_CACHE_TTL"), 0)
	if err != nil {
		return nil, fmt.Errorf("FAILURE_CACHE_TTL: %w", err)
	}
	size, err := intEnv(env("FAILURE_CACHE_SIZE"), 256)
	if err != nil {
		return nil, fmt.Errorf("FAILURE_CACHE_SIZE: %w", err)
	}
	runs, err := intEnv(env("TELEMETRY_RUNS"), 128)
	if err != nil {
		return nil, fmt.Errorf("TELEMETRY_RUNS: %w", err)
	}

	return &Config{
		Port: *port,
		Env:  firstNonEmpty(env("APP_ENV"), "local"),
		Retrieval: RetrievalConfig{
			Backend:   firstNonEmpty(env("RETRIEVER_BACKEND"), "git"),
			GitBinary: env("GIT_BINARY"),
			Timeout:   timeout,
		},
		CORS:          CORSConfig{AllowedOrigins: originsEnv(env("CORS_ALLOWED_ORIGINS"))},
		Failures:      FailureCacheConfig{Size: size, TTL: ttl},
		TelemetryRuns: runs,
	}, nil
}

// durationEnv accepts Go durations ("90s") or a bare number of seconds.
func durationEnv(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(raw)
}

func intEnv(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func originsEnv(raw string) []string {
	if raw == "" {
		return append([]string(nil), defaultAllowedOrigins...)
	}
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
