// Package redraw owns the selected dimension mode and turns a selection into
// a generate-then-render pass, surfacing failures through a banner instead of
// tearing the UI down.
package redraw
