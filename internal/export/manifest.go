package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// ManifestName is the file Finish writes into the run directory.
const ManifestName = "manifest.json"

type FileEntry struct {
	Name  string `json:"name"`
	Bytes int64  `json:"bytes"`
}

type Manifest struct {
	ID        string      `json:"id"`
	Mode      string      `json:"mode"`
	Strategy  string      `json:"strategy"`
	Palette   string      `json:"palette"`
	Timestamp time.Time   `json:"timestamp"`
	Files     []FileEntry `json:"files"`
}

// Run collects rendered files under one directory and describes them in a
// manifest. Nothing is ever read back.
type Run struct {
	dir      string
	manifest Manifest
}

// NewRun creates dir if needed.
func NewRun(dir, mode, strategy, palette string) (*Run, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Run{
		dir: dir,
		manifest: Manifest{
			ID:        uuid.NewString(),
			Mode:      mode,
			Strategy:  strategy,
			Palette:   palette,
			Timestamp: time.Now(),
		},
	}, nil
}

func (r *Run) Dir() string        { return r.dir }
func (r *Run) Manifest() Manifest { return r.manifest }

type countingFile struct {
	*os.File
	run   *Run
	name  string
	bytes int64
}

func (f *countingFile) Write(p []byte) (int, error) {
	n, err := f.File.Write(p)
	f.bytes += int64(n)
	return n, err
}

func (f *countingFile) Close() error {
	f.run.manifest.Files = append(f.run.manifest.Files, FileEntry{Name: f.name, Bytes: f.bytes})
	return f.File.Close()
}

// Create opens a file in the run directory. Its size is recorded on Close.
func (r *Run) Create(name string) (io.WriteCloser, error) {
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("export: %q must be a bare file name", name)
	}
	f, err := os.Create(filepath.Join(r.dir, name))
	if err != nil {
		return nil, err
	}
	return &countingFile{File: f, run: r, name: name}, nil
}

// WriteFile is Create, write, Close.
func (r *Run) WriteFile(name string, write func(io.Writer) error) error {
	f, err := r.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	return f.Close()
}

// Finish writes the manifest.
func (r *Run) Finish() error {
	sort.Slice(r.manifest.Files, func(i, j int) bool {
		return r.manifest.Files[i].Name < r.manifest.Files[j].Name
	})
	data, err := json.MarshalIndent(r.manifest, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(r.dir, ManifestName), append(data, '\n'), 0644)
}

// Summary is a short human-readable listing of the run.
func (r *Run) Summary() string {
	var sb strings.Builder
	var total int64
	fmt.Fprintf(&sb, "run %s (%s, %s, %s) in %s\n", r.manifest.ID, r.manifest.Mode, r.manifest.Strategy, r.manifest.Palette, r.dir)
	for _, f := range r.manifest.Files {
		fmt.Fprintf(&sb, "  %-28s %10s\n", f.Name, humanize.Bytes(uint64(f.Bytes)))
		total += f.Bytes
	}
	fmt.Fprintf(&sb, "  %d files, %s total, created %s\n",
		len(r.manifest.Files), humanize.Bytes(uint64(total)), humanize.Time(r.manifest.Timestamp))
	return sb.String()
}
