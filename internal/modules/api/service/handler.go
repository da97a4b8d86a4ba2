package service

import (
	"context"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"upvotes_analyzer/internal/analyzer"
	"upvotes_analyzer/internal/models"
	"upvotes_analyzer/pkg/logger"
)

// 100k значений int64 в json с запасом
const maxBodyBytes = 4 << 20

var errBodyTooLarge = errors.Errorf("request body too large (limit %d bytes)", maxBodyBytes)

// Analyzer — то, что API дергает у сервиса анализа.
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.Run, error)
	Breakdown(ctx context.Context, req models.AnalyzeRequest) ([]models.WindowMetric, error)
	Run(ctx context.Context, id string) (*models.Run, error)
}

type Handler struct {
	svc Analyzer
}

func NewHandler(svc Analyzer) *Handler {
	return &Handler{svc: svc}
}

type errorResponse struct {
	Error string `json:"error"`
}

type breakdownResponse struct {
	Windows []models.WindowMetric `json:"windows"`
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/metrics", h.metrics)
	mux.HandleFunc("POST /v1/breakdown", h.breakdown)
	mux.HandleFunc("GET /v1/runs/{id}", h.run)
	mux.HandleFunc("GET /v1/stream", h.stream)
}

func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		writeDecodeError(w, err)
		return
	}
	run, err := h.svc.Analyze(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, withoutValues(run))
}

func (h *Handler) breakdown(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		writeDecodeError(w, err)
		return
	}
	windows, err := h.svc.Breakdown(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdownResponse{Windows: windows})
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	run, err := h.svc.Run(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// analyzeBody — тело запроса. n необязателен: без него N = len(values),
// явно переданное значение (в том числе 0) уходит в валидацию как есть.
type analyzeBody struct {
	N      *int    `json:"n"`
	K      int     `json:"k"`
	Values []int64 `json:"values"`
}

func (b analyzeBody) request() models.AnalyzeRequest {
	n := len(b.Values)
	if b.N != nil {
		n = *b.N
	}
	return models.AnalyzeRequest{N: n, K: b.K, Values: b.Values}
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (models.AnalyzeRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return models.AnalyzeRequest{}, errBodyTooLarge
		}
		return models.AnalyzeRequest{}, errors.Wrap(err, "read body")
	}
	return parseRequest(body)
}

func parseRequest(data []byte) (models.AnalyzeRequest, error) {
	var body analyzeBody
	if err := sonic.Unmarshal(data, &body); err != nil {
		return models.AnalyzeRequest{}, errors.Wrap(err, "decode request")
	}
	return body.request(), nil
}

// в ответе не дублируем входные значения
func withoutValues(run *models.Run) models.Run {
	out := *run
	out.Values = nil
	return out
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, analyzer.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeDecodeError — тело не прочитано или не разобрано: 413 или 400.
func writeDecodeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, errBodyTooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.Error("api: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := sonic.Marshal(v)
	if err != nil {
		logger.Error("api: encode response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
