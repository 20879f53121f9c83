// ABOUTME: In-memory UI surface implementing every App port.
// ABOUTME: Used headless by the CLI and MCP server, and serialized as the web page state.
package ui

import (
	"time"

	"github.com/harperreed/mapty/internal/app"
	"github.com/harperreed/mapty/internal/models"
)

// Surface is the whole screen: map, form, list, alerts and reload flag.
type Surface struct {
	Map    *Map
	Form   *Form
	List   *List
	Alerts *Alerts

	reloads int
}

// NewSurface returns an empty screen with the form hidden and the running
// type selected.
func NewSurface() *Surface {
	return &Surface{
		Map:    &Map{},
		Form:   &Form{Fields: app.FormValues{Type: string(models.WorkoutRunning)}, Row: models.WorkoutRunning},
		List:   &List{},
		Alerts: &Alerts{},
	}
}

// Ports binds the surface and a locator into App ports.
func (s *Surface) Ports(locator app.Locator) app.Ports {
	return app.Ports{
		Locator: locator,
		Map:     s.Map,
		Form:    s.Form,
		List:    s.List,
		Alerts:  s.Alerts,
		Reload:  s,
	}
}

// Reload records a reload request; the owner rebuilds the App.
func (s *Surface) Reload() {
	s.reloads++
}

// Reloads returns how many reloads were requested.
func (s *Surface) Reloads() int {
	return s.reloads
}

// Map records what the map widget was asked to draw.
type Map struct {
	Initialized bool            `json:"initialized"`
	Center      models.Coords   `json:"center"`
	Zoom        int             `json:"zoom"`
	Pan         *app.PanOptions `json:"pan,omitempty"`
	// ViewSeq increments on every SetView so clients can replay pans.
	ViewSeq int             `json:"view_seq"`
	Tiles   []app.TileLayer `json:"tiles"`
	Markers []app.Marker    `json:"markers"`

	onClick func(models.Coords)
}

func (m *Map) SetView(center models.Coords, zoom int, pan *app.PanOptions) {
	m.Initialized = true
	m.Center = center
	m.Zoom = zoom
	m.Pan = pan
	m.ViewSeq++
}

func (m *Map) AddTileLayer(layer app.TileLayer) {
	m.Tiles = append(m.Tiles, layer)
}

func (m *Map) OnClick(handler func(models.Coords)) {
	m.onClick = handler
}

func (m *Map) AddMarker(marker app.Marker) {
	m.Markers = append(m.Markers, marker)
}

// Click simulates a user click at c. It reports false when no map exists to
// receive it.
func (m *Map) Click(c models.Coords) bool {
	if !m.Initialized || m.onClick == nil {
		return false
	}
	m.onClick(c)
	return true
}

// Form mirrors the DOM form.
type Form struct {
	Visible bool               `json:"visible"`
	Fields  app.FormValues     `json:"fields"`
	Row     models.WorkoutType `json:"row"`
	Focused string             `json:"focused,omitempty"`
	// RestoreAfterMS is the pending display-transition delay after an
	// instant hide; zero when none is pending.
	RestoreAfterMS int64 `json:"restore_after_ms"`
}

func (f *Form) Show() {
	f.Visible = true
	f.RestoreAfterMS = 0
}

func (f *Form) Hide(restoreAfter time.Duration) {
	f.Visible = false
	f.Focused = ""
	f.RestoreAfterMS = restoreAfter.Milliseconds()
}

func (f *Form) FocusDistance() {
	f.Focused = "distance"
}

func (f *Form) Clear() {
	f.Fields = app.FormValues{Type: f.Fields.Type}
}

func (f *Form) ShowRow(t models.WorkoutType) {
	f.Row = t
}

func (f *Form) Values() app.FormValues {
	return f.Fields
}

// Fill replaces the field contents, as a user typing would.
func (f *Form) Fill(values app.FormValues) {
	f.Fields = values
}

// SetType selects a type without touching the other fields.
func (f *Form) SetType(t string) {
	f.Fields.Type = t
}

// List holds rendered entries in render order.
type List struct {
	Items []app.ListItem `json:"items"`
}

func (l *List) Render(item app.ListItem) {
	l.Items = append(l.Items, item)
}

// Alerts queues notifications until they are shown.
type Alerts struct {
	Pending []string `json:"pending"`
}

func (a *Alerts) Alert(message string) {
	a.Pending = append(a.Pending, message)
}

// Drain returns the queued alerts and empties the queue.
func (a *Alerts) Drain() []string {
	out := a.Pending
	a.Pending = nil
	return out
}

// Snapshot is the JSON view of the whole surface.
type Snapshot struct {
	Map      *Map     `json:"map"`
	Form     *Form    `json:"form"`
	List     *List    `json:"list"`
	Alerts   []string `json:"alerts"`
	Reloaded bool     `json:"reloaded"`
}

// Snapshot drains pending alerts into a serializable view of the surface.
func (s *Surface) Snapshot() Snapshot {
	alerts := s.Alerts.Drain()
	if alerts == nil {
		alerts = []string{}
	}
	return Snapshot{
		Map:      s.Map,
		Form:     s.Form,
		List:     s.List,
		Alerts:   alerts,
		Reloaded: s.reloads > 0,
	}
}
