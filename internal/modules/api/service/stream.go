package service

import (
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"upvotes_analyzer/internal/analyzer"
	"upvotes_analyzer/pkg/logger"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// metricFrame — одно окно.
type metricFrame struct {
	Index  int   `json:"index"`
	Metric int64 `json:"metric"`
}

type doneFrame struct {
	Done    bool   `json:"done"`
	RunID   string `json:"run_id"`
	Windows int    `json:"windows"`
}

// stream: на каждый запрос из сокета отдаём по кадру на окно и завершающий done.
// Ошибка ввода — кадр с error, соединение живёт; прочие ошибки закрывают сокет.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("stream: upgrade: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxBodyBytes)

	ctx := r.Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("stream: read: %v", err)
			}
			return
		}

		req, err := parseRequest(data)
		if err != nil {
			if writeFrame(conn, errorResponse{Error: err.Error()}) != nil {
				return
			}
			continue
		}

		run, err := h.svc.Analyze(ctx, req)
		if err != nil {
			if writeFrame(conn, errorResponse{Error: err.Error()}) != nil || !errors.Is(err, analyzer.ErrInvalidInput) {
				return
			}
			continue
		}

		for i, m := range run.Metrics {
			if err := writeFrame(conn, metricFrame{Index: i, Metric: m}); err != nil {
				logger.Debug("stream: write: %v", err)
				return
			}
		}
		if err := writeFrame(conn, doneFrame{Done: true, RunID: run.ID, Windows: len(run.Metrics)}); err != nil {
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, v any) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}
