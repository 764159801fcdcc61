package viz

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTarget indicates a drawing target was not supplied.
	ErrMissingTarget = errors.New("viz: render target not found")

	// ErrRender indicates drawing a panel failed.
	ErrRender = errors.New("viz: render failed")

	// ErrUnknownStrategy indicates a strategy name outside chart/canvas/animation.
	ErrUnknownStrategy = errors.New("viz: unknown render strategy")

	// ErrUnknownPalette indicates a palette or colour slot that does not exist.
	ErrUnknownPalette = errors.New("viz: unknown palette")
)

// MissingTargetError names the strategy and the target it could not find.
type MissingTargetError struct {
	Strategy string
	Target   string
}

func (e *MissingTargetError) Error() string {
	return fmt.Sprintf("%s: target %q not found", e.Strategy, e.Target)
}

func (e *MissingTargetError) Unwrap() error { return ErrMissingTarget }

// RenderError wraps a drawing failure on one target.
type RenderError struct {
	Strategy string
	Target   string
	Wrapped  error
}

func (e *RenderError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s: %v", e.Strategy, e.Wrapped)
	}
	return fmt.Sprintf("%s %s: %v", e.Strategy, e.Target, e.Wrapped)
}

func (e *RenderError) Unwrap() []error { return []error{ErrRender, e.Wrapped} }

// MissingTargets splits err into the missing-target reports it carries and
// whatever else remains. rest is nil when err held only missing targets.
func MissingTargets(err error) (missing []*MissingTargetError, rest error) {
	if err == nil {
		return nil, nil
	}
	var others []error
	var walk func(error)
	walk = func(e error) {
		if mt, ok := e.(*MissingTargetError); ok {
			missing = append(missing, mt)
			return
		}
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			if _, isRender := e.(*RenderError); !isRender {
				for _, inner := range joined.Unwrap() {
					walk(inner)
				}
				return
			}
		}
		others = append(others, e)
	}
	walk(err)
	return missing, errors.Join(others...)
}
