// Package output persists reconstructed source files.
package output

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/adhocdec/core"
)

// Suffix is appended to every reconstructed file name.
const Suffix = "comp"

// ManifestName is the file the manifest is written to, under the output root.
const ManifestName = "manifest.yaml"

// ErrOutsideRoot is returned for file names that would be written outside of
// the output root.
var ErrOutsideRoot = errors.New("file name escapes the output root")

// Entry describes one written file.
type Entry struct {
	Name   string `yaml:"name"`
	Path   string `yaml:"path"`
	Bytes  int    `yaml:"bytes"`
	Lines  int    `yaml:"lines"`
	Digest string `yaml:"blake2b_256"`
}

// Manifest lists the files written for one input.
type Manifest struct {
	Source string  `yaml:"source"`
	Files  []Entry `yaml:"files"`
}

// Writer writes the files of a result under its root directory.
type Writer struct {
	root     string
	manifest bool
	logger   *slog.Logger
}

// Root returns the output root.
func (w *Writer) Root() string {
	return w.root
}

// PathFor returns where the file with the given name is written. Absolute
// names nest under the root.
func (w *Writer) PathFor(name string) (string, error) {
	rel := filepath.FromSlash(strings.ReplaceAll(name, `\`, "/"))
	rel = strings.TrimPrefix(rel, filepath.VolumeName(rel))
	rel = strings.TrimLeft(rel, string(filepath.Separator))
	rel = filepath.Clean(rel)

	if rel == "." || rel == ".." ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, name)
	}

	return filepath.Join(w.root, rel) + Suffix, nil
}

// Write stores every file of the source map and, when enabled, the manifest.
// The source names the input the files were reconstructed from.
func (w *Writer) Write(source string, files *core.SourceMap) (*Manifest, error) {
	m := &Manifest{Source: source}

	names := files.Names()
	paths := make([]string, len(names))

	for i, name := range names {
		path, err := w.PathFor(name)
		if err != nil {
			return nil, err
		}

		paths[i] = path
	}

	for i, name := range names {
		text, _ := files.Get(name)

		entry, err := w.writeFile(name, paths[i], text)
		if err != nil {
			return nil, err
		}

		m.Files = append(m.Files, entry)
	}

	if w.manifest {
		if err := w.writeManifest(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (w *Writer) writeFile(name, path, text string) (Entry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Entry{}, fmt.Errorf("failed to create directory for %s: %w", name, err)
	}

	data := []byte(text)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Entry{}, fmt.Errorf("failed to write %s: %w", path, err)
	}

	digest := blake2b.Sum256(data)

	w.logger.Info("file written", "name", name, "path", path, "bytes", len(data))

	return Entry{
		Name:   name,
		Path:   path,
		Bytes:  len(data),
		Lines:  countLines(text),
		Digest: hex.EncodeToString(digest[:]),
	}, nil
}

func (w *Writer) writeManifest(m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return fmt.Errorf("failed to create output root: %w", err)
	}

	path := filepath.Join(w.root, ManifestName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// ReadManifest loads a manifest written by a Writer.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return m, nil
}

func countLines(text string) int {
	if text == "" {
		return 0
	}

	return strings.Count(text, "\n") + 1
}
