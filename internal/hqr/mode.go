package hqr

import (
	"fmt"
	"strings"
)

// DimensionMode selects the 4D or 11D illustrative parameter set.
type DimensionMode int

const (
	FourD DimensionMode = iota
	ElevenD
)

// Modes lists every mode in selector order.
var Modes = []DimensionMode{FourD, ElevenD}

// ParseMode accepts "4D", "11D" (any case) or the bare numbers.
func ParseMode(s string) (DimensionMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "4D", "4":
		return FourD, nil
	case "11D", "11":
		return ElevenD, nil
	}
	return FourD, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m DimensionMode) String() string {
	switch m {
	case FourD:
		return "4D"
	case ElevenD:
		return "11D"
	}
	return fmt.Sprintf("DimensionMode(%d)", int(m))
}

// Valid reports whether m is one of the two known modes.
func (m DimensionMode) Valid() bool {
	return m == FourD || m == ElevenD
}

// Toggle returns the other mode.
func (m DimensionMode) Toggle() DimensionMode {
	if m == ElevenD {
		return FourD
	}
	return ElevenD
}

// Complexity scales the wave phase and hidden-order oscillation.
func (m DimensionMode) Complexity() float64 {
	if m == ElevenD {
		return 2.5
	}
	return 1.0
}

// Scale is the frequency multiplier of the manifold correlation strength.
func (m DimensionMode) Scale() float64 {
	if m == ElevenD {
		return 2.0
	}
	return 1.0
}

// Label is the human name shown next to the selector.
func (m DimensionMode) Label() string {
	if m == ElevenD {
		return "11D M-Theory"
	}
	return "4D Reality"
}

func (m DimensionMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *DimensionMode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
