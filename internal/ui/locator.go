// ABOUTME: Geolocation adapters for the App's Locator port.
// ABOUTME: FixedLocator answers at once; DeferredLocator waits for a browser answer.
package ui

import (
	"errors"

	"github.com/harperreed/mapty/internal/models"
)

// ErrNoLocation is reported when no position is available.
var ErrNoLocation = errors.New("no location available")

// FixedLocator answers synchronously with a configured position, or fails
// when none is set.
type FixedLocator struct {
	Coords *models.Coords
}

func (l FixedLocator) Locate(onSuccess func(models.Coords), onError func(error)) {
	if l.Coords == nil {
		onError(ErrNoLocation)
		return
	}
	onSuccess(*l.Coords)
}

// DeferredLocator holds the callbacks until the browser reports back.
type DeferredLocator struct {
	onSuccess func(models.Coords)
	onError   func(error)
}

func (l *DeferredLocator) Locate(onSuccess func(models.Coords), onError func(error)) {
	l.onSuccess = onSuccess
	l.onError = onError
}

// Pending reports whether a request is waiting for an answer.
func (l *DeferredLocator) Pending() bool {
	return l.onSuccess != nil
}

// Resolve answers the pending request with a position. It reports false when
// nothing is pending; each request is answered at most once.
func (l *DeferredLocator) Resolve(c models.Coords) bool {
	if !l.Pending() {
		return false
	}
	fn := l.onSuccess
	l.clear()
	fn(c)
	return true
}

// Fail answers the pending request with an error.
func (l *DeferredLocator) Fail(err error) bool {
	if !l.Pending() {
		return false
	}
	fn := l.onError
	l.clear()
	if err == nil {
		err = ErrNoLocation
	}
	fn(err)
	return true
}

func (l *DeferredLocator) clear() {
	l.onSuccess = nil
	l.onError = nil
}
