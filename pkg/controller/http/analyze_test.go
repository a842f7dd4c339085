package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	controller "github.com/m-mizutani/preflight/pkg/controller/http"
	"github.com/m-mizutani/preflight/pkg/domain/model"
)

// stubAnalyzeUseCase returns a fixed result or error
type stubAnalyzeUseCase struct {
	result string
	err    error
	calls  int
}

func (s *stubAnalyzeUseCase) Analyze(ctx context.Context, prURL string) (string, error) {
	s.calls++
	if _, err := model.ParsePRURL(prURL); err != nil {
		return "", err
	}
	if s.err != nil {
		return "", s.err
	}
	return s.result, nil
}

func postAnalyze(t *testing.T, uc *stubAnalyzeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := controller.NewAnalyzeHandler(uc)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.Handle(w, req)
	return w
}

func TestAnalyzeHandler(t *testing.T) {
	t.Run("successful analysis", func(t *testing.T) {
		uc := &stubAnalyzeUseCase{result: "# Deployment Impact Analysis 🚀\n\nAll good."}
		w := postAnalyze(t, uc, `{"pr_url": "https://github.com/octocat/hello-world/pull/7"}`)

		gt.V(t, w.Code).Equal(http.StatusOK)

		var resp model.AnalysisResponse
		gt.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		gt.True(t, !resp.Failed())
		gt.True(t, strings.Contains(resp.Result, "All good."))
		gt.V(t, uc.calls).Equal(1)
	})

	t.Run("missing pr_url", func(t *testing.T) {
		uc := &stubAnalyzeUseCase{result: "unused"}
		w := postAnalyze(t, uc, `{}`)

		gt.V(t, w.Code).Equal(http.StatusBadRequest)

		var resp model.AnalysisResponse
		gt.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		gt.True(t, resp.Failed())
		gt.V(t, uc.calls).Equal(0)
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		uc := &stubAnalyzeUseCase{result: "unused"}
		w := postAnalyze(t, uc, `{broken`)

		gt.V(t, w.Code).Equal(http.StatusBadRequest)
		gt.V(t, uc.calls).Equal(0)
	})

	t.Run("invalid PR URL maps to 400", func(t *testing.T) {
		uc := &stubAnalyzeUseCase{result: "unused"}
		w := postAnalyze(t, uc, `{"pr_url": "not-a-url"}`)

		gt.V(t, w.Code).Equal(http.StatusBadRequest)

		var resp model.AnalysisResponse
		gt.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		gt.True(t, resp.Failed())
		gt.True(t, strings.Contains(*resp.Error, "invalid pull request URL"))
	})

	t.Run("analysis failure maps to 500 with error envelope", func(t *testing.T) {
		uc := &stubAnalyzeUseCase{err: goerr.New("rate limited")}
		w := postAnalyze(t, uc, `{"pr_url": "https://github.com/octocat/hello-world/pull/7"}`)

		gt.V(t, w.Code).Equal(http.StatusInternalServerError)

		var resp model.AnalysisResponse
		gt.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		gt.True(t, resp.Failed())
		gt.True(t, strings.Contains(*resp.Error, "rate limited"))
	})
}
