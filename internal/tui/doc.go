// Package tui holds the bubbletea programs: the panel explorer, which drives
// the canvas renderer through a redraw controller, and the particle
// animation, which is itself a renderer that keeps its own state across
// mode changes.
package tui
