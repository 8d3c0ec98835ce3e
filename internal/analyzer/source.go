package analyzer

import (
	"errors"
	"strings"

	"codeviz/internal/failure"
)

var allowedPrefixes = []string{"https://github.com/", "http://github.com/"}

// ErrInvalidSource is wrapped by every ParseSource rejection.
var ErrInvalidSource = errors.New("provide a public GitHub HTTPS URL")

// Source is a repository URL that passed ParseSource. The zero value is not
// a valid source.
type Source struct {
	url string
}

// ParseSource trims raw and accepts it only when it starts with
// https://github.com/ or http://github.com/.
func ParseSource(raw string) (Source, error) {
	u := strings.TrimSpace(raw)
	for _, p := range allowedPrefixes {
		if strings.HasPrefix(u, p) {
			return Source{url: u}, nil
		}
	}
	return Source{}, failure.New(failure.InvalidSource, ErrInvalidSource)
}

func (s Source) URL() string    { return s.url }
func (s Source) String() string { return s.url }
func (s Source) IsZero() bool   { return s.url == "" }
