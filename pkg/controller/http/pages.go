package http

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/preflight/pkg/domain/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageHandler serves the web front end: the submission form and the
// analysis results page
type PageHandler struct {
	tmpl          *template.Template
	clientTimeout time.Duration
}

// NewPageHandler parses the embedded page templates
func NewPageHandler(clientTimeout time.Duration) (*PageHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse page templates")
	}

	return &PageHandler{
		tmpl:          tmpl,
		clientTimeout: clientTimeout,
	}, nil
}

type indexData struct {
	PRURL string
	Error string
}

// Index serves the PR URL submission form
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "index.html", http.StatusOK, indexData{})
}

// Submit validates the posted PR URL. Invalid input re-renders the form with
// an inline error and never dispatches an analysis; valid input redirects to
// the results page.
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, goerr.Wrap(err, "invalid form submission"), http.StatusBadRequest)
		return
	}

	prURL := r.FormValue("pr_url")
	if _, err := model.ParsePRURL(prURL); err != nil {
		h.renderPage(w, r, "index.html", http.StatusUnprocessableEntity, indexData{
			PRURL: prURL,
			Error: "Please enter a valid pull request URL",
		})
		return
	}

	http.Redirect(w, r, "/analyze?pr_url="+url.QueryEscape(prURL), http.StatusSeeOther)
}

type analysisData struct {
	PRURL     string
	TimeoutMS int64
}

// Analysis serves the results page, which fetches the analysis from the API
// endpoint and renders it client-side
func (h *PageHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	prURL := r.URL.Query().Get("pr_url")
	if prURL == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderPage(w, r, "analysis.html", http.StatusOK, analysisData{
		PRURL:     prURL,
		TimeoutMS: h.clientTimeout.Milliseconds(),
	})
}

func (h *PageHandler) renderPage(w http.ResponseWriter, r *http.Request, name string, status int, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		ctxlog.From(r.Context()).Error("Failed to render page", "page", name, "error", err)
	}
}
