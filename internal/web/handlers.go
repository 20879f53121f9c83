// ABOUTME: HTTP handlers for browser events, workout listing and export.
// ABOUTME: Event handlers run against the locked session and answer with its snapshot.
package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/harperreed/mapty/internal/app"
	"github.com/harperreed/mapty/internal/models"
	"github.com/harperreed/mapty/internal/storage"
)

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.do(w, nil)
}

// locationRequest is the browser's geolocation answer. A non-empty Error
// reports failure.
type locationRequest struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Error string  `json:"error,omitempty"`
}

func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, s.log, err, http.StatusBadRequest, "invalid location")
		return
	}
	s.do(w, func() {
		if req.Error != "" {
			s.locator.Fail(errors.New(req.Error))
			return
		}
		s.locator.Resolve(models.Coords{Lat: req.Lat, Lng: req.Lng})
	})
}

func (s *Server) handleMapClick(w http.ResponseWriter, r *http.Request) {
	var c models.Coords
	if err := decodeBody(w, r, &c); err != nil {
		handleError(w, r, s.log, err, http.StatusBadRequest, "invalid click")
		return
	}
	s.do(w, func() {
		s.surface.Map.Click(c)
	})
}

type typeRequest struct {
	Type string `json:"type"`
}

func (s *Server) handleFormType(w http.ResponseWriter, r *http.Request) {
	var req typeRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, s.log, err, http.StatusBadRequest, "invalid type change")
		return
	}
	s.do(w, func() {
		s.surface.Form.SetType(req.Type)
		s.app.ChangeType()
	})
}

func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	var values app.FormValues
	if err := decodeBody(w, r, &values); err != nil {
		handleError(w, r, s.log, err, http.StatusBadRequest, "invalid form")
		return
	}
	s.do(w, func() {
		s.surface.Form.Fill(values)
		s.app.Submit()
	})
}

func (s *Server) handleFormCancel(w http.ResponseWriter, r *http.Request) {
	s.do(w, func() { s.app.CancelForm() })
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.do(w, func() {
		s.app.SelectWorkout(id)
	})
}

// handleReset answers with the snapshot that asks the page to reload, then
// swaps in a fresh session so requests racing the reload see an empty list.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.app.Reset()
	snap := s.surface.Snapshot()
	if s.surface.Reloads() > 0 {
		s.restart()
	}
	s.mu.Unlock()
	handleSuccess(w, snap, nil)
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	var filter *models.WorkoutType
	if raw := r.URL.Query().Get("type"); raw != "" {
		wt, err := models.ParseWorkoutType(raw)
		if err != nil {
			handleError(w, r, s.log, err, http.StatusBadRequest, "invalid type")
			return
		}
		filter = &wt
	}

	s.mu.Lock()
	workouts := models.FilterByType(s.app.Workouts(), filter)
	s.mu.Unlock()

	records := make([]storage.Record, 0, len(workouts))
	for _, wo := range workouts {
		records = append(records, storage.RecordFromWorkout(wo))
	}
	handleSuccess(w, records, map[string]any{"count": len(records)})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	var (
		data        []byte
		err         error
		contentType string
	)
	switch format {
	case "", "json":
		data, err = s.store.ExportJSON()
		contentType = "application/json; charset=utf-8"
	case "yaml", "yml":
		data, err = s.store.ExportYAML()
		contentType = "application/yaml; charset=utf-8"
	default:
		handleError(w, r, s.log, nil, http.StatusBadRequest, "unknown format "+format)
		return
	}
	if err != nil {
		handleError(w, r, s.log, err, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}
