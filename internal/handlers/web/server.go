package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	commonUUID "github.com/vera24m/ultimatum-game/internal/common/uuid"
	"github.com/vera24m/ultimatum-game/internal/services/experiment"
	"github.com/vera24m/ultimatum-game/internal/services/export"
	"github.com/vera24m/ultimatum-game/internal/services/questionnaire"
)

//go:embed templates/*.html
var templateFS embed.FS

// sessionCookieName carries the opaque browser session identifier
const sessionCookieName = "ug_session"

type contextKey string

const sessionIDKey contextKey = "session_id"

// Config holds configuration for the web handler
type Config struct {
	// Service dependencies
	ExperimentService    experiment.Service
	QuestionnaireService questionnaire.Service
	ExportService        export.Service

	UUIDGenerator commonUUID.UUID
	Logger        *zap.Logger
}

// Handler serves the experiment's page flow
type Handler struct {
	experimentService    experiment.Service
	questionnaireService questionnaire.Service
	exportService        export.Service

	uuid      commonUUID.UUID
	logger    *zap.Logger
	templates *template.Template
}

// New creates a new web handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.ExperimentService == nil {
		return nil, errors.New("experiment service cannot be nil")
	}
	if cfg.QuestionnaireService == nil {
		return nil, errors.New("questionnaire service cannot be nil")
	}
	if cfg.ExportService == nil {
		return nil, errors.New("export service cannot be nil")
	}
	if cfg.UUIDGenerator == nil {
		return nil, errors.New("UUID generator cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Handler{
		experimentService:    cfg.ExperimentService,
		questionnaireService: cfg.QuestionnaireService,
		exportService:        cfg.ExportService,
		uuid:                 cfg.UUIDGenerator,
		logger:               cfg.Logger,
		templates:            templates,
	}, nil
}

// Router builds the experiment's route table
func (h *Handler) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Timeout(60*time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/export/results.csv", h.exportResults)

	r.Group(func(r chi.Router) {
		r.Use(h.withSession)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			seeOther(w, r, "/start")
		})
		r.Get("/start", h.startGame)
		r.Get("/instructions", h.viewInstructions)
		r.Get("/framing", h.framingDisclosure)
		r.Get("/no-opponent-category", h.noOpponentCategory)
		r.Get("/round/start", h.startRound)
		r.Get("/round/play", h.playRound)
		r.Post("/round/play", h.submitRound)
		r.Get("/round/end", h.endRound)
		r.Get("/questionnaire", h.showQuestionnaire)
		r.Post("/questionnaire", h.submitQuestionnaire)
		r.Get("/demographic", h.showDemographic)
		r.Post("/demographic", h.submitDemographic)
		r.Get("/complete", h.complete)
	})

	return r
}

// withSession ensures every participant request carries a session ID,
// minting a cookie on first contact. A missing or expired cookie just
// starts a fresh session; it is never an error.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		} else {
			sessionID = h.uuid.NewUUID()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionID extracts the browser session ID installed by withSession
func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionIDKey).(string)
	return id
}

// seeOther redirects with 303, the redirect-on-success pattern every
// phase transition uses
func seeOther(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// render executes a template with a flat context
func (h *Handler) render(w http.ResponseWriter, name string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("failed to render template", zap.String("template", name), zap.Error(err))
	}
}

// fail logs an internal error and returns a 500. Invariant violations
// land here; they are operator problems, not participant problems.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
