package redraw

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/san-kum/hqrviz/internal/hqr"
	"github.com/san-kum/hqrviz/internal/viz"
)

// BannerPrefix starts every failure banner.
const BannerPrefix = "Error initializing visualizations: "

// ErrNoRenderer is reported by Select on a controller built without a renderer.
var ErrNoRenderer = errors.New("redraw: no renderer")

type State int

const (
	Idle State = iota
	Redrawing
)

func (s State) String() string {
	if s == Redrawing {
		return "redrawing"
	}
	return "idle"
}

// Controller serializes mode selections onto one generator and one renderer.
type Controller struct {
	gen      hqr.Generator
	renderer viz.Renderer
	strategy string
	logger   *slog.Logger

	state atomic.Int32

	mu     sync.Mutex
	mode   hqr.DimensionMode
	frame  hqr.Frame
	drawn  bool
	banner string
}

// New returns an idle controller in FourD that has not drawn anything yet.
// A nil logger discards. With a nil renderer every Select fails with
// ErrNoRenderer.
func New(gen hqr.Generator, renderer viz.Renderer, logger *slog.Logger) *Controller {
	if gen == nil {
		gen = hqr.Standard
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	strategy := "none"
	if renderer != nil {
		strategy = renderer.Name()
	}
	return &Controller{
		gen:      gen,
		renderer: renderer,
		strategy: strategy,
		logger:   logger.With("strategy", strategy),
		mode:     hqr.FourD,
	}
}

// Select regenerates and redraws for mode. On failure the previous mode and
// frame stay current and the banner is set. Missing targets are logged and
// do not count as failures.
func (c *Controller) Select(mode hqr.DimensionMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Store(int32(Redrawing))
	defer c.state.Store(int32(Idle))

	frame, err := c.generate(mode)
	if err == nil {
		err = c.render(frame)
	}
	if err != nil {
		c.banner = BannerPrefix + err.Error()
		c.logger.Error("redraw failed", "mode", mode.String(), "error", err)
		return err
	}

	c.mode, c.frame, c.drawn = mode, frame, true
	c.banner = ""
	c.logger.Debug("redraw", "mode", mode.String(), "wave", len(frame.Wave), "manifold", len(frame.Manifold))
	return nil
}

// Redraw repeats the current mode, e.g. after a resize.
func (c *Controller) Redraw() error {
	return c.Select(c.Mode())
}

func (c *Controller) generate(mode hqr.DimensionMode) (frame hqr.Frame, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &hqr.GenerationError{Mode: mode, Wrapped: fmt.Errorf("panic: %v", r)}
		}
	}()
	return c.gen.Generate(mode)
}

func (c *Controller) render(frame hqr.Frame) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &viz.RenderError{Strategy: c.strategy, Wrapped: fmt.Errorf("panic: %v", r)}
		}
	}()
	if c.renderer == nil {
		return &viz.RenderError{Strategy: c.strategy, Wrapped: ErrNoRenderer}
	}
	missing, rest := viz.MissingTargets(c.renderer.Render(frame))
	for _, m := range missing {
		c.logger.Error("visualization target not found", "target", m.Target, "strategy", m.Strategy)
	}
	return rest
}

func (c *Controller) Mode() hqr.DimensionMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// State may be read from inside a Render call.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Banner is the current error banner, empty after a successful redraw.
func (c *Controller) Banner() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.banner
}

// Frame returns the last successfully rendered frame and whether one exists.
func (c *Controller) Frame() (hqr.Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame, c.drawn
}
