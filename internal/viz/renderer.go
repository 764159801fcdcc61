package viz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/hqrviz/internal/hqr"
)

const (
	StrategyChart     = "chart"
	StrategyCanvas    = "canvas"
	StrategyAnimation = "animation"
)

// Strategies lists the selectable rendering strategies.
var Strategies = []string{StrategyChart, StrategyCanvas, StrategyAnimation}

// Target identifiers, one per panel.
const (
	TargetWave        = "wave-function"
	TargetCorrelation = "correlation"
	TargetHolographic = "holographic"
)

// TargetIDs lists the panels in drawing order.
var TargetIDs = []string{TargetWave, TargetCorrelation, TargetHolographic}

// Renderer draws a frame onto its targets, replacing whatever was there.
type Renderer interface {
	Name() string
	Render(frame hqr.Frame) error
}

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, name := range Strategies {
		if s == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// panel pairs a target ID with the routine that paints it.
type panel[T any] struct {
	id   string
	draw func(target T, frame hqr.Frame) error
}

// renderPanels looks each panel's target up and draws it, skipping missing
// targets. Missing targets and failures are joined into the result.
func renderPanels[T any](strategy string, lookup func(id string) (T, bool), frame hqr.Frame, panels []panel[T]) error {
	var errs []error
	for _, p := range panels {
		t, ok := lookup(p.id)
		if !ok {
			errs = append(errs, &MissingTargetError{Strategy: strategy, Target: p.id})
			continue
		}
		if err := p.draw(t, frame); err != nil {
			errs = append(errs, &RenderError{Strategy: strategy, Target: p.id, Wrapped: err})
		}
	}
	return errors.Join(errs...)
}
