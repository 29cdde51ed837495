package api

import (
	"log/slog"

	"github.com/sarchlab/adhocdec/config"
	"github.com/sarchlab/adhocdec/core"
	"github.com/sarchlab/adhocdec/disasm"
	"github.com/sarchlab/adhocdec/output"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	config config.Config
	logger *slog.Logger
	trace  bool

	disassembler  Disassembler
	reconstructor Reconstructor
	writer        Writer
}

// NewDriverBuilder returns a builder with the default configuration.
func NewDriverBuilder() DriverBuilder {
	return DriverBuilder{config: config.Default()}
}

// WithConfig sets the configuration.
func (b DriverBuilder) WithConfig(c config.Config) DriverBuilder {
	b.config = c
	return b
}

// WithLogger sets the logger shared by all the stages.
func (b DriverBuilder) WithLogger(logger *slog.Logger) DriverBuilder {
	b.logger = logger
	return b
}

// WithTrace attaches the instruction tracer to the engine.
func (b DriverBuilder) WithTrace(trace bool) DriverBuilder {
	b.trace = trace
	return b
}

// WithDisassembler replaces the external disassembler runner.
func (b DriverBuilder) WithDisassembler(d Disassembler) DriverBuilder {
	b.disassembler = d
	return b
}

// WithReconstructor replaces the engine. Per-file histograms are only
// available with the built-in engine.
func (b DriverBuilder) WithReconstructor(r Reconstructor) DriverBuilder {
	b.reconstructor = r
	return b
}

// WithWriter replaces the output writer.
func (b DriverBuilder) WithWriter(w Writer) DriverBuilder {
	b.writer = w
	return b
}

// Build creates a driver.
func (b DriverBuilder) Build(name string) Driver {
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	d := &driverImpl{
		disassembler:  b.disassembler,
		reconstructor: b.reconstructor,
		writer:        b.writer,
		encoding:      b.config.InputEncoding,
		report:        b.config.Report,
		logger:        logger.With("driver", name),
	}

	if d.disassembler == nil {
		d.disassembler = disasm.NewRunnerBuilder().
			WithConfig(b.config.Disassembler).
			WithLogger(d.logger).
			Build()
	}

	if d.reconstructor == nil {
		d.counter = core.NewKindCounter()

		engineBuilder := core.NewBuilder().
			WithLogger(d.logger).
			WithHook(d.counter)
		if b.trace {
			engineBuilder = engineBuilder.WithHook(core.InstTracer{})
		}

		d.reconstructor = engineBuilder.Build(name + ".Engine")
	}

	if d.writer == nil {
		d.writer = output.NewWriterBuilder().
			WithRoot(b.config.OutputRoot).
			WithManifest(b.config.Manifest).
			WithLogger(d.logger).
			Build()
	}

	return d
}
