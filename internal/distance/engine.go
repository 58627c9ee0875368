package distance

import (
	"github.com/mmynk/caddie/internal/location"
	"github.com/mmynk/caddie/internal/models"
)

// Mode selects how a recording session captures distance.
type Mode string

const (
	ModeNone   Mode = ""
	ModeManual Mode = "manual"
	ModeGPS    Mode = "gps"
)

// ParseMode maps a wire value to a Mode. Unknown values map to ModeNone.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeManual, ModeGPS:
		return Mode(s)
	default:
		return ModeNone
	}
}

// Engine holds the distance inputs of one recording session.
// Manual text is only accepted in ModeManual and pins only in ModeGPS;
// switching modes keeps the other mode's inputs.
type Engine struct {
	provider location.Provider

	mode   Mode
	manual float64
	start  *models.Coordinate
	end    *models.Coordinate
	gps    float64 // yards, valid only when end != nil
}

// NewEngine creates an Engine reading pins from provider.
func NewEngine(provider location.Provider) *Engine {
	return &Engine{provider: provider}
}

// Mode returns the active input mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// SetMode switches the input mode.
func (e *Engine) SetMode(m Mode) {
	e.mode = m
}

// SetManual records typed distance text. Ignored outside ModeManual.
func (e *Engine) SetManual(text string) bool {
	if e.mode != ModeManual {
		return false
	}
	e.manual = ParseManual(text)
	return true
}

// DropStartPin captures the current location as the start pin.
// It is a no-op when not in GPS mode or no fix is available. A new start pin
// invalidates any end pin so the derived distance is never stale.
func (e *Engine) DropStartPin() bool {
	if e.mode != ModeGPS || e.provider == nil {
		return false
	}
	c, ok := e.provider.CurrentLocation()
	if !ok {
		return false
	}
	e.start = &c
	e.end = nil
	e.gps = 0
	return true
}

// DropEndPin captures the current location as the end pin and computes the
// GPS distance. It is a no-op without a start pin or a fix.
func (e *Engine) DropEndPin() bool {
	if e.mode != ModeGPS || e.provider == nil || e.start == nil {
		return false
	}
	c, ok := e.provider.CurrentLocation()
	if !ok {
		return false
	}
	e.end = &c
	e.gps = HaversineYards(*e.start, c)
	return true
}

// StartPin returns a copy of the start pin, or nil.
func (e *Engine) StartPin() *models.Coordinate {
	if e.start == nil {
		return nil
	}
	c := *e.start
	return &c
}

// EndPin returns a copy of the end pin, or nil.
func (e *Engine) EndPin() *models.Coordinate {
	if e.end == nil {
		return nil
	}
	c := *e.end
	return &c
}

// Distance returns the yardage to record and where it came from.
// A GPS-derived distance takes precedence over manual input.
// ok is false when no positive distance exists.
func (e *Engine) Distance() (yards float64, source models.Source, ok bool) {
	if e.end != nil {
		return e.gps, models.SourceGPS, e.gps > 0
	}
	if e.manual > 0 {
		return e.manual, models.SourceManual, true
	}
	return 0, "", false
}
