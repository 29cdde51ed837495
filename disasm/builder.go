package disasm

import (
	"log/slog"

	"github.com/sarchlab/adhocdec/config"
)

// RunnerBuilder can create Runners.
type RunnerBuilder struct {
	executable    string
	bytecodeExt   string
	listingSuffix string
	workDir       string
	logger        *slog.Logger
}

// NewRunnerBuilder returns a builder with the default disassembler settings.
func NewRunnerBuilder() RunnerBuilder {
	return RunnerBuilder{}.WithConfig(config.Default().Disassembler)
}

// WithConfig copies the disassembler settings from c.
func (b RunnerBuilder) WithConfig(c config.DisassemblerConfig) RunnerBuilder {
	b.executable = c.Executable
	b.bytecodeExt = c.BytecodeExt
	b.listingSuffix = c.ListingSuffix

	return b
}

// WithExecutable sets the name or path of the disassembler.
func (b RunnerBuilder) WithExecutable(executable string) RunnerBuilder {
	b.executable = executable
	return b
}

// WithWorkDir sets the directory the disassembler runs in and is searched in
// when it is not on the PATH.
func (b RunnerBuilder) WithWorkDir(dir string) RunnerBuilder {
	b.workDir = dir
	return b
}

// WithLogger sets the logger.
func (b RunnerBuilder) WithLogger(logger *slog.Logger) RunnerBuilder {
	b.logger = logger
	return b
}

// Build creates a Runner.
func (b RunnerBuilder) Build() *Runner {
	r := &Runner{
		executable:    b.executable,
		bytecodeExt:   b.bytecodeExt,
		listingSuffix: b.listingSuffix,
		workDir:       b.workDir,
		logger:        b.logger,
	}

	if r.workDir == "" {
		r.workDir = "."
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}
