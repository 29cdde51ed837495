// Package disasm runs the external disassembler that turns compiled Adhoc
// scripts into listings the decompiler can read.
package disasm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	// ErrExecutableNotFound is returned when the disassembler is neither on
	// the PATH nor in the working directory.
	ErrExecutableNotFound = errors.New("disassembler executable not found")

	// ErrDisassemblyFailed is returned when the disassembler exits with an
	// error.
	ErrDisassemblyFailed = errors.New("disassembler failed")
)

// Runner invokes the disassembler on compiled scripts.
type Runner struct {
	executable    string
	bytecodeExt   string
	listingSuffix string
	workDir       string
	logger        *slog.Logger
}

// NeedsDisassembly tells whether the input is a compiled script rather than a
// listing.
func (r *Runner) NeedsDisassembly(path string) bool {
	return r.bytecodeExt != "" && strings.HasSuffix(path, r.bytecodeExt)
}

// ListingPath returns where the disassembler leaves the listing of a compiled
// script.
func (r *Runner) ListingPath(path string) string {
	return strings.TrimSuffix(path, r.bytecodeExt) + r.listingSuffix
}

// Locate finds the disassembler, first on the PATH and then in the working
// directory.
func (r *Runner) Locate() (string, error) {
	if path, err := exec.LookPath(r.executable); err == nil {
		return path, nil
	}

	local := filepath.Join(r.workDir, r.executable)
	if info, err := os.Stat(local); err == nil && !info.IsDir() {
		return filepath.Abs(local)
	}

	return "", fmt.Errorf("%w: %s must be on the PATH or in %s",
		ErrExecutableNotFound, r.executable, r.workDir)
}

// Disassemble runs the disassembler on a compiled script and returns the path
// of the listing it produced.
func (r *Runner) Disassemble(ctx context.Context, path string) (string, error) {
	exe, err := r.Locate()
	if err != nil {
		return "", err
	}

	r.logger.Info("disassembling", "executable", exe, "input", path)

	cmd := exec.CommandContext(ctx, exe, path)
	cmd.Dir = r.workDir

	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %s %s: %v: %s",
			ErrDisassemblyFailed, exe, path, err, strings.TrimSpace(string(out)))
	}

	listing := r.ListingPath(path)
	r.logger.Debug("disassembled", "listing", listing)

	return listing, nil
}
