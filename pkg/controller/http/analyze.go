package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/preflight/pkg/domain/interfaces"
	"github.com/m-mizutani/preflight/pkg/domain/model"
	"github.com/m-mizutani/preflight/pkg/domain/types"
)

// AnalyzeHandler handles POST /api/analyze requests
type AnalyzeHandler struct {
	analyzeUC interfaces.AnalyzeUseCase
}

// NewAnalyzeHandler creates a new AnalyzeHandler
func NewAnalyzeHandler(analyzeUC interfaces.AnalyzeUseCase) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzeUC: analyzeUC,
	}
}

// Handle runs a deployment impact analysis for the submitted PR URL and
// responds with the {"result"} / {"error"} envelope
func (h *AnalyzeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var req model.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid analyze request body", "error", err)
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.PRURL == "" {
		writeError(w, goerr.New("PR URL is required"), http.StatusBadRequest)
		return
	}

	result, err := h.analyzeUC.Analyze(ctx, req.PRURL)
	if err != nil {
		if errors.Is(err, types.ErrInvalidPRURL) {
			logger.Warn("Rejected invalid PR URL", "error", err, "pr_url", req.PRURL)
			writeError(w, err, http.StatusBadRequest)
			return
		}

		logger.Error("Failed to analyze deployment impact", "error", err, "pr_url", req.PRURL)
		sentry.CaptureException(err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(model.AnalysisResponse{Result: result}); err != nil {
		logger.Error("Failed to encode analyze response", "error", err)
	}
}
