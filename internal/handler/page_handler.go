package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageHandler は患者・医師向けのHTMLページを配信する。
type PageHandler struct {
	templates *template.Template
}

// NewPageHandler はテンプレートをパースしてPageHandlerを生成する。
func NewPageHandler() (*PageHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PageHandler{templates: tmpl}, nil
}

// Home はトップページを返す。
// GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, "home.html")
}

// Patient は患者向け予約フォームページを返す。
// GET /patient
func (h *PageHandler) Patient(w http.ResponseWriter, r *http.Request) {
	h.render(w, "patient.html")
}

// Doctor は医師向けダッシュボードページを返す。
// GET /doctor
func (h *PageHandler) Doctor(w http.ResponseWriter, r *http.Request) {
	h.render(w, "doctor.html")
}

func (h *PageHandler) render(w http.ResponseWriter, name string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, nil); err != nil {
		slog.Error("failed to render template",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
	}
}
