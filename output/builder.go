package output

import "log/slog"

// WriterBuilder can create Writers.
type WriterBuilder struct {
	root     string
	manifest bool
	logger   *slog.Logger
}

// NewWriterBuilder returns a builder that writes under "generated".
func NewWriterBuilder() WriterBuilder {
	return WriterBuilder{root: "generated"}
}

// WithRoot sets the output root.
func (b WriterBuilder) WithRoot(root string) WriterBuilder {
	b.root = root
	return b
}

// WithManifest enables writing the manifest.
func (b WriterBuilder) WithManifest(enabled bool) WriterBuilder {
	b.manifest = enabled
	return b
}

// WithLogger sets the logger.
func (b WriterBuilder) WithLogger(logger *slog.Logger) WriterBuilder {
	b.logger = logger
	return b
}

// Build creates a Writer.
func (b WriterBuilder) Build() *Writer {
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Writer{
		root:     b.root,
		manifest: b.manifest,
		logger:   logger,
	}
}
