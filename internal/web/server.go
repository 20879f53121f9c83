// ABOUTME: Web adapter: serves the Leaflet page and turns browser events into App calls.
// ABOUTME: One App at a time behind a mutex; every page load builds a fresh one.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/harperreed/mapty/internal/app"
	"github.com/harperreed/mapty/internal/storage"
	"github.com/harperreed/mapty/internal/ui"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Server hosts a single App session.
type Server struct {
	store *storage.WorkoutStore
	opts  app.Options
	log   *zap.SugaredLogger

	mu      sync.Mutex
	surface *ui.Surface
	locator *ui.DeferredLocator
	app     *app.App

	router chi.Router
}

// NewServer builds a server and starts its first App session.
func NewServer(store *storage.WorkoutStore, opts app.Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Server{store: store, opts: opts, log: log}
	s.restart()
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/workouts", s.handleListWorkouts)
		r.Get("/export", s.handleExport)

		r.Post("/location", s.handleLocation)
		r.Post("/map/click", s.handleMapClick)
		r.Post("/form/type", s.handleFormType)
		r.Post("/form/submit", s.handleFormSubmit)
		r.Post("/form/cancel", s.handleFormCancel)
		r.Post("/workouts/{id}/select", s.handleSelect)
		r.Post("/reset", s.handleReset)
	})
	return r
}

// restart replaces the session with a fresh App. Callers hold mu, except
// during construction.
func (s *Server) restart() {
	s.surface = ui.NewSurface()
	s.locator = &ui.DeferredLocator{}
	s.app = app.New(s.surface.Ports(s.locator), s.store, s.opts)
	s.app.Start()
}

// do runs fn against the current session and answers with the snapshot.
func (s *Server) do(w http.ResponseWriter, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		fn()
	}
	handleSuccess(w, s.surface.Snapshot(), nil)
}

type pageData struct {
	Title string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.restart()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, pageData{Title: "mapty"}); err != nil {
		s.log.Warnw("render page", "request_id", requestIDFrom(r.Context()), "error", err)
	}
}
