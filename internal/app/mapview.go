// ABOUTME: Map adapter: initializes the view, renders workout markers and pans to workouts.
// ABOUTME: Popup options and pan timing match the browser map widget defaults.
package app

import (
	"fmt"

	"github.com/harperreed/mapty/internal/models"
)

const (
	// PanDuration is the pan-to animation length in seconds.
	PanDuration = 0.45

	popupMaxWidth = 250
	popupMinWidth = 100
)

// mapView wraps the widget once geolocation has produced a center.
type mapView struct {
	widget MapWidget
	zoom   int
}

func loadMap(widget MapWidget, center models.Coords, zoom int, layer TileLayer, onClick func(models.Coords)) *mapView {
	widget.SetView(center, zoom, nil)
	widget.AddTileLayer(layer)
	widget.OnClick(onClick)
	return &mapView{widget: widget, zoom: zoom}
}

func (m *mapView) renderMarker(w *models.Workout) {
	m.widget.AddMarker(Marker{
		WorkoutID: w.ID,
		Coords:    w.Coords,
		Popup:     PopupFor(w),
	})
}

// panTo recenters on w at the fixed zoom, animated.
func (m *mapView) panTo(w *models.Workout) {
	m.widget.SetView(w.Coords, m.zoom, &PanOptions{Animate: true, Duration: PanDuration})
}

// PopupFor builds the marker popup for a workout.
func PopupFor(w *models.Workout) Popup {
	return Popup{
		MaxWidth:     popupMaxWidth,
		MinWidth:     popupMinWidth,
		AutoClose:    false,
		CloseOnClick: false,
		ClassName:    fmt.Sprintf("%s-popup", w.Type),
		Content:      fmt.Sprintf("%s %s", w.Description, w.Icon()),
	}
}
