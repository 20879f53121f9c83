// ABOUTME: App controller wiring geolocation, map, form, list and storage together.
// ABOUTME: Owns the in-memory workout list; not safe for concurrent use.
package app

import (
	"time"

	"github.com/harperreed/mapty/internal/models"
	"github.com/harperreed/mapty/internal/storage"
	"go.uber.org/zap"
)

// User-facing alert texts.
const (
	AlertNoLocation   = "Could not get your location"
	AlertInvalidInput = "This value is not a positive number!"
)

// Map defaults.
const (
	DefaultZoom        = 14
	DefaultTileURL     = "https://{s}.tile.openstreetmap.fr/hot/{z}/{x}/{y}.png"
	DefaultAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

// Options tune the App. Zero values use the defaults.
type Options struct {
	TileURL     string
	Attribution string
	Zoom        int
	Logger      *zap.SugaredLogger
	// Now stamps new workouts; defaults to time.Now.
	Now func() time.Time
}

// App mediates between the ports and the workout list.
type App struct {
	ports Ports
	store *storage.WorkoutStore
	opts  Options
	log   *zap.SugaredLogger

	mapView  *mapView
	form     *formController
	workouts []*models.Workout
}

// New builds an App. Nothing happens until Start.
func New(ports Ports, store *storage.WorkoutStore, opts Options) *App {
	if opts.Zoom <= 0 {
		opts.Zoom = DefaultZoom
	}
	if opts.TileURL == "" {
		opts.TileURL = DefaultTileURL
	}
	if opts.Attribution == "" {
		opts.Attribution = DefaultAttribution
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &App{
		ports: ports,
		store: store,
		opts:  opts,
		log:   log,
		form:  newFormController(ports.Form),
	}
}

// Start loads persisted workouts, renders their list entries and requests
// geolocation. The map (and its markers) appear when the position arrives.
func (a *App) Start() {
	a.workouts = a.store.Load()
	for _, w := range a.workouts {
		a.ports.List.Render(ItemFor(w))
	}
	a.log.Debugw("loaded workouts", "count", len(a.workouts))

	a.form.syncRows()
	a.ports.Locator.Locate(a.onLocated, a.onLocateFailed)
}

func (a *App) onLocated(pos models.Coords) {
	if a.mapView != nil {
		return
	}
	layer := TileLayer{URLTemplate: a.opts.TileURL, Attribution: a.opts.Attribution}
	a.mapView = loadMap(a.ports.Map, pos, a.opts.Zoom, layer, a.showForm)
	for _, w := range a.workouts {
		a.mapView.renderMarker(w)
	}
	a.log.Debugw("map ready", "center", pos.String(), "markers", len(a.workouts))
}

func (a *App) onLocateFailed(err error) {
	a.log.Infow("geolocation failed", "error", err)
	a.ports.Alerts.Alert(AlertNoLocation)
}

// MapReady reports whether geolocation succeeded and the map exists.
func (a *App) MapReady() bool {
	return a.mapView != nil
}

func (a *App) showForm(at models.Coords) {
	a.form.show(at)
}

// FormVisible reports whether the form is open.
func (a *App) FormVisible() bool {
	return a.form.visible()
}

// ChangeType reacts to the type selector changing.
func (a *App) ChangeType() {
	a.form.syncRows()
}

// CancelForm hides the form without creating anything.
func (a *App) CancelForm() {
	if !a.form.visible() {
		return
	}
	a.form.hide()
}

// Submit validates the form and records a workout. It returns the new
// workout, or nil when the form is closed or the input is invalid.
func (a *App) Submit() *models.Workout {
	if !a.form.visible() {
		return nil
	}

	in, ok := validate(a.ports.Form.Values())
	if !ok {
		a.ports.Form.Clear()
		a.ports.Alerts.Alert(AlertInvalidInput)
		return nil
	}

	w := in.build(a.opts.Now(), a.form.at)
	a.workouts = append(a.workouts, w)
	a.mapView.renderMarker(w)
	a.ports.List.Render(ItemFor(w))
	a.form.hide()
	a.persist()

	a.log.Infow("workout created", "id", w.ID, "type", w.Type, "description", w.Description)
	return w.Clone()
}

func (a *App) persist() {
	if err := a.store.Save(a.workouts); err != nil {
		a.log.Warnw("failed to save workouts", "error", err)
	}
}

// SelectWorkout pans the map to the first workout whose ID equals id. It
// does nothing without a map or a match, and reports whether it panned.
func (a *App) SelectWorkout(id string) bool {
	if a.mapView == nil {
		return false
	}
	for _, w := range a.workouts {
		if w.ID == id {
			a.mapView.panTo(w)
			return true
		}
	}
	return false
}

// Workouts returns a copy of the list in insertion order.
func (a *App) Workouts() []*models.Workout {
	out := make([]*models.Workout, 0, len(a.workouts))
	for _, w := range a.workouts {
		out = append(out, w.Clone())
	}
	return out
}

// Reset deletes the stored list and reloads. There is no confirmation.
func (a *App) Reset() {
	if err := a.store.Clear(); err != nil {
		a.log.Warnw("failed to clear workouts", "error", err)
	}
	a.ports.Reload.Reload()
}
