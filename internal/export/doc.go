// Package export writes sample tables and rendered canvases to files: CSV and
// JSON for the generated samples, SVG and PNG for terminal canvases, and a
// manifest describing everything written in one run.
package export
