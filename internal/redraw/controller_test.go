package redraw_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hqrviz/internal/hqr"
	"github.com/san-kum/hqrviz/internal/redraw"
	"github.com/san-kum/hqrviz/internal/viz"
)

type record struct {
	level slog.Level
	msg   string
	attrs map[string]string
}

type captureHandler struct {
	mu      *sync.Mutex
	records *[]record
	attrs   []slog.Attr
}

func newCaptureHandler() *captureHandler {
	return &captureHandler{mu: &sync.Mutex{}, records: &[]record{}}
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	rec := record{level: r.Level, msg: r.Message, attrs: map[string]string{}}
	for _, a := range h.attrs {
		rec.attrs[a.Key] = a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		rec.attrs[a.Key] = a.Value.String()
		return true
	})
	h.mu.Lock()
	defer h.mu.Unlock()
	*h.records = append(*h.records, rec)
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{mu: h.mu, records: h.records, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h *captureHandler) WithGroup(string) slog.Handler { return h }

func (h *captureHandler) errors() []record {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []record
	for _, r := range *h.records {
		if r.level == slog.LevelError {
			out = append(out, r)
		}
	}
	return out
}

type fakeRenderer struct {
	frames []hqr.Frame
	err    error
	panics bool
	during func()
}

func (r *fakeRenderer) Name() string { return "fake" }

func (r *fakeRenderer) Render(frame hqr.Frame) error {
	if r.during != nil {
		r.during()
	}
	if r.panics {
		panic("canvas exploded")
	}
	r.frames = append(r.frames, frame)
	return r.err
}

var _ = Describe("Controller", func() {
	var (
		handler  *captureHandler
		renderer *fakeRenderer
		ctrl     *redraw.Controller
	)

	BeforeEach(func() {
		handler = newCaptureHandler()
		renderer = &fakeRenderer{}
		ctrl = redraw.New(hqr.Standard, renderer, slog.New(handler))
	})

	It("starts idle in 4D with nothing drawn", func() {
		Expect(ctrl.Mode()).To(Equal(hqr.FourD))
		Expect(ctrl.State()).To(Equal(redraw.Idle))
		Expect(ctrl.Banner()).To(BeEmpty())
		_, drawn := ctrl.Frame()
		Expect(drawn).To(BeFalse())
	})

	It("generates and renders the selected mode", func() {
		Expect(ctrl.Select(hqr.ElevenD)).To(Succeed())
		Expect(ctrl.Mode()).To(Equal(hqr.ElevenD))
		Expect(renderer.frames).To(HaveLen(1))
		Expect(renderer.frames[0].Mode).To(Equal(hqr.ElevenD))
		Expect(renderer.frames[0].Wave).To(HaveLen(hqr.WaveSamples))
		Expect(renderer.frames[0].Manifold).To(HaveLen(hqr.ManifoldSamples))

		frame, drawn := ctrl.Frame()
		Expect(drawn).To(BeTrue())
		Expect(frame).To(Equal(hqr.Generate(hqr.ElevenD)))
	})

	It("reports redrawing while the renderer runs", func() {
		var seen redraw.State
		renderer.during = func() { seen = ctrl.State() }
		Expect(ctrl.Select(hqr.FourD)).To(Succeed())
		Expect(seen).To(Equal(redraw.Redrawing))
		Expect(ctrl.State()).To(Equal(redraw.Idle))
	})

	It("redraws the current mode", func() {
		Expect(ctrl.Select(hqr.ElevenD)).To(Succeed())
		Expect(ctrl.Redraw()).To(Succeed())
		Expect(renderer.frames).To(HaveLen(2))
		Expect(renderer.frames[1].Mode).To(Equal(hqr.ElevenD))
	})

	Context("when targets are missing", func() {
		BeforeEach(func() {
			renderer.err = errors.Join(
				&viz.MissingTargetError{Strategy: "fake", Target: viz.TargetWave},
				&viz.MissingTargetError{Strategy: "fake", Target: viz.TargetHolographic},
			)
		})

		It("logs each target once and still succeeds", func() {
			Expect(ctrl.Select(hqr.ElevenD)).To(Succeed())
			Expect(ctrl.Mode()).To(Equal(hqr.ElevenD))
			Expect(ctrl.Banner()).To(BeEmpty())

			logged := handler.errors()
			Expect(logged).To(HaveLen(2))
			Expect(logged[0].attrs).To(HaveKeyWithValue("target", viz.TargetWave))
			Expect(logged[0].attrs).To(HaveKeyWithValue("strategy", "fake"))
			Expect(logged[1].attrs).To(HaveKeyWithValue("target", viz.TargetHolographic))
		})
	})

	Context("when rendering fails", func() {
		BeforeEach(func() {
			Expect(ctrl.Select(hqr.FourD)).To(Succeed())
		})

		It("keeps the previous mode and frame and shows a banner", func() {
			renderer.err = &viz.RenderError{Strategy: "fake", Target: viz.TargetWave, Wrapped: errors.New("no ink")}

			err := ctrl.Select(hqr.ElevenD)
			Expect(err).To(MatchError(viz.ErrRender))
			Expect(ctrl.Mode()).To(Equal(hqr.FourD))
			frame, _ := ctrl.Frame()
			Expect(frame.Mode).To(Equal(hqr.FourD))
			Expect(ctrl.Banner()).To(HavePrefix(redraw.BannerPrefix))
			Expect(ctrl.Banner()).To(ContainSubstring("no ink"))
			Expect(ctrl.State()).To(Equal(redraw.Idle))
		})

		It("recovers a renderer panic", func() {
			renderer.panics = true
			err := ctrl.Select(hqr.ElevenD)
			Expect(err).To(MatchError(viz.ErrRender))
			Expect(ctrl.Banner()).To(ContainSubstring("canvas exploded"))
			Expect(ctrl.Mode()).To(Equal(hqr.FourD))
		})

		It("clears the banner on the next success", func() {
			renderer.err = errors.New("transient")
			Expect(ctrl.Select(hqr.ElevenD)).NotTo(Succeed())
			Expect(ctrl.Banner()).NotTo(BeEmpty())

			renderer.err = nil
			Expect(ctrl.Select(hqr.ElevenD)).To(Succeed())
			Expect(ctrl.Banner()).To(BeEmpty())
			Expect(ctrl.Mode()).To(Equal(hqr.ElevenD))
		})
	})

	Context("when generation fails", func() {
		It("does not render and wraps the failure", func() {
			boom := errors.New("boom")
			ctrl = redraw.New(hqr.GeneratorFunc(func(hqr.DimensionMode) (hqr.Frame, error) {
				panic(boom)
			}), renderer, slog.New(handler))

			err := ctrl.Select(hqr.ElevenD)
			Expect(err).To(MatchError(hqr.ErrGeneration))
			Expect(renderer.frames).To(BeEmpty())
			Expect(ctrl.Banner()).To(Equal(redraw.BannerPrefix + err.Error()))
		})

		It("rejects an unknown mode", func() {
			err := ctrl.Select(hqr.DimensionMode(7))
			Expect(err).To(MatchError(hqr.ErrUnknownMode))
			Expect(ctrl.Mode()).To(Equal(hqr.FourD))
		})
	})

	It("fails selections without a renderer instead of panicking", func() {
		ctrl = redraw.New(nil, nil, slog.New(handler))
		err := ctrl.Select(hqr.ElevenD)
		Expect(err).To(MatchError(redraw.ErrNoRenderer))
		Expect(err).To(MatchError(viz.ErrRender))
		Expect(ctrl.Mode()).To(Equal(hqr.FourD))
		Expect(ctrl.Banner()).To(HavePrefix(redraw.BannerPrefix))
		Expect(ctrl.State()).To(Equal(redraw.Idle))
	})

	It("serializes concurrent selections", func() {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer GinkgoRecover()
				defer wg.Done()
				Expect(ctrl.Select(hqr.Modes[i%2])).To(Succeed())
			}(i)
		}
		wg.Wait()
		Expect(renderer.frames).To(HaveLen(20))
		for _, f := range renderer.frames {
			Expect(f.Wave).To(HaveLen(hqr.WaveSamples))
		}
	})
})
