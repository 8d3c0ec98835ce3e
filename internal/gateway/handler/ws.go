package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"codeviz/internal/analyzer"
	"codeviz/internal/types"
)

const (
	analyzeWSWriteWait = 10 * time.Second
	analyzeWSPongWait  = 60 * time.Second
	analyzeWSPingEvery = (analyzeWSPongWait * 9) / 10
)

// upgrader accepts browser handshakes only from allowed origins. Requests
// without an Origin header come from non-browser clients and are accepted.
func (h *AnalyzeHandler) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || h.origins.Allows(origin)
		},
	}
}

type analyzeWSOutbound struct {
	Type      string                `json:"type"`
	RunID     string                `json:"run_id,omitempty"`
	Stage     string                `json:"stage,omitempty"`
	State     string                `json:"state,omitempty"`
	ElapsedMs int64                 `json:"elapsed_ms,omitempty"`
	Fields    map[string]any        `json:"fields,omitempty"`
	Result    *types.AnalysisResult `json:"result,omitempty"`
	Status    int                   `json:"status,omitempty"`
	Detail    string                `json:"detail,omitempty"`
}

// HandleAnalyzeWS serves GET /api/analyze/ws?repo_url=... It streams one
// "stage" message per pipeline event and ends with a "result" or "error"
// message, then closes the socket.
func (h *AnalyzeHandler) HandleAnalyzeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader().Upgrade(w, r, nil)
	if err != nil {
		log.Printf("analyze ws upgrade from %q: %v", r.Header.Get("Origin"), err)
		return
	}
	defer conn.Close()

	runID := uuid.NewString()
	ctx, cancel := context.WithCancel(analyzer.WithRunID(r.Context(), runID))
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(analyzeWSPongWait)); err != nil {
		log.Printf("analyze ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(analyzeWSPongWait))
	})

	// The client never sends anything meaningful; reading keeps pong
	// handling alive and notices a disconnect.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	writeCh := make(chan analyzeWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(analyzeWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out, ok := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(analyzeWSWriteWait)); err != nil {
					return
				}
				if !ok {
					_ = conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(analyzeWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	push := func(out analyzeWSOutbound) {
		out.RunID = runID
		select {
		case writeCh <- out:
		case <-ctx.Done():
		}
	}

	push(analyzeWSOutbound{Type: "accepted"})
	final := h.runWS(ctx, runID, r.URL.Query().Get("repo_url"), push)
	push(final)
	close(writeCh)
	<-writerDone
}

func (h *AnalyzeHandler) runWS(ctx context.Context, runID, rawURL string, push func(analyzeWSOutbound)) analyzeWSOutbound {
	src, err := analyzer.ParseSource(rawURL)
	if err != nil {
		status, detail := ErrorDetail(err)
		return analyzeWSOutbound{Type: "error", Status: status, Detail: detail}
	}

	record := h.observer(runID)
	res, err := h.svc.AnalyzeObserved(ctx, src, func(ev analyzer.Event) {
		if record != nil {
			record(ev)
		}
		if ev.Stage == analyzer.StageDone || ev.Stage == analyzer.StageFailed {
			return
		}
		out := analyzeWSOutbound{
			Type:      "stage",
			Stage:     string(ev.Stage),
			State:     string(ev.Status),
			ElapsedMs: ev.Elapsed.Milliseconds(),
			Fields:    ev.Detail,
		}
		push(out)
	})
	if err != nil {
		status, detail := ErrorDetail(err)
		log.Printf("analyze ws %s [%s]: %d %s", src, runID, status, detail)
		return analyzeWSOutbound{Type: "error", Status: status, Detail: detail}
	}
	return analyzeWSOutbound{Type: "result", Result: res}
}
