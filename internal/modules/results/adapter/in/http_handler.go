package in

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	resultsdto "gazesim/internal/modules/results/dto"
	resultsin "gazesim/internal/modules/results/port/in"
	"gazesim/internal/platform/config"
	apperrors "gazesim/internal/platform/errors"
	"gazesim/internal/platform/logging"
)

const maxBodyBytes = 64 << 10

// HTTPHandler serves the submission endpoint and the results location.
type HTTPHandler struct {
	usecase resultsin.Usecase
	log     hclog.Logger
	metrics *Metrics
}

func NewHTTPHandler(usecase resultsin.Usecase, log hclog.Logger, metrics *Metrics) *HTTPHandler {
	if log == nil {
		log = logging.Discard()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &HTTPHandler{usecase: usecase, log: log.Named("http"), metrics: metrics}
}

func (h *HTTPHandler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.logRequests)
	r.HandleFunc(config.SubmitPath, h.submit).Methods(http.MethodPost)
	r.HandleFunc(config.ResultsPath, h.latest).Methods(http.MethodGet)
	r.HandleFunc(config.ResultsPath+"/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/api/submissions", h.list).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", h.metrics.Handler()).Methods(http.MethodGet)
	return r
}

func (h *HTTPHandler) submit(w http.ResponseWriter, r *http.Request) {
	input := resultsdto.SubmitInput{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&input); err != nil {
		h.metrics.observe(outcomeRejected, 0)
		writeError(w, http.StatusBadRequest, "malformed summary: "+err.Error())
		return
	}
	out, err := h.usecase.Submit(r.Context(), input)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			h.metrics.observe(outcomeRejected, 0)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.metrics.observe(outcomeFailed, 0)
		h.log.Error("record submission", "error", err)
		writeError(w, http.StatusInternalServerError, "could not record submission")
		return
	}
	h.metrics.observe(outcomeAccepted, out.GazeData.PupilDilation)
	h.log.Info("submission recorded", "id", out.ID, "fixations", out.GazeData.Fixations, "saccades", out.GazeData.Saccades)
	writeJSON(w, http.StatusOK, out)
}

func (h *HTTPHandler) latest(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.Latest(r.Context())
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *HTTPHandler) get(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *HTTPHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}
	items, err := h.usecase.List(r.Context(), resultsdto.ListInput{Limit: limit})
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": items, "count": len(items)})
}

func (h *HTTPHandler) writeLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		writeError(w, http.StatusNotFound, "no results")
	case errors.Is(err, apperrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("load results", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load results")
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (h *HTTPHandler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.log.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "elapsed", time.Since(started))
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
