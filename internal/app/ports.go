// ABOUTME: Ports the App controller drives: geolocation, map widget, form, list, alerts, reload.
// ABOUTME: Adapters (in-memory surface, web page) implement these; tests swap in their own.
package app

import (
	"time"

	"github.com/harperreed/mapty/internal/models"
)

// Locator requests the current position once. Exactly one of the callbacks
// fires, possibly after Locate has returned.
type Locator interface {
	Locate(onSuccess func(models.Coords), onError func(error))
}

// MapWidget is the third-party map: view, tiles, click events and markers.
type MapWidget interface {
	SetView(center models.Coords, zoom int, pan *PanOptions)
	AddTileLayer(layer TileLayer)
	OnClick(handler func(models.Coords))
	AddMarker(marker Marker)
}

// TileLayer is the tile source and its attribution.
type TileLayer struct {
	URLTemplate string `json:"url_template"`
	Attribution string `json:"attribution"`
}

// PanOptions animate a view change. Duration is in seconds, as the map
// widget expects.
type PanOptions struct {
	Animate  bool    `json:"animate"`
	Duration float64 `json:"duration"`
}

// Popup is the bubble bound to a marker.
type Popup struct {
	MaxWidth     int    `json:"max_width"`
	MinWidth     int    `json:"min_width"`
	AutoClose    bool   `json:"auto_close"`
	CloseOnClick bool   `json:"close_on_click"`
	ClassName    string `json:"class_name"`
	Content      string `json:"content"`
}

// Marker anchors an open popup at a workout's coordinates.
type Marker struct {
	WorkoutID string        `json:"workout_id"`
	Coords    models.Coords `json:"coords"`
	Popup     Popup         `json:"popup"`
}

// FormValues are the raw field contents of the workout form.
type FormValues struct {
	Type      string `json:"type"`
	Distance  string `json:"distance"`
	Duration  string `json:"duration"`
	Cadence   string `json:"cadence"`
	Elevation string `json:"elevation"`
}

// FormView is the DOM form surface.
type FormView interface {
	Show()
	// Hide hides the form at once; the display transition is restored
	// after restoreAfter.
	Hide(restoreAfter time.Duration)
	FocusDistance()
	// Clear empties every input except the type selector.
	Clear()
	// ShowRow makes the row for t visible and hides the other type's row.
	ShowRow(t models.WorkoutType)
	Values() FormValues
}

// ListView renders workout list entries.
type ListView interface {
	Render(item ListItem)
}

// Alerter shows a blocking notification.
type Alerter interface {
	Alert(message string)
}

// Reloader restarts the application from persisted state.
type Reloader interface {
	Reload()
}

// Ports bundles every capability the App needs.
type Ports struct {
	Locator Locator
	Map     MapWidget
	Form    FormView
	List    ListView
	Alerts  Alerter
	Reload  Reloader
}
