// Package api provides the driver that turns one input into reconstructed
// source files.
package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/sarchlab/adhocdec/config"
	"github.com/sarchlab/adhocdec/core"
	"github.com/sarchlab/adhocdec/output"
	"github.com/sarchlab/adhocdec/verify"
)

// Driver runs the decompiler.
type Driver interface {
	// Decompile reconstructs the sources recorded in the input and writes
	// them. Compiled scripts are disassembled first. A *core.FatalError is
	// returned unwrapped when the reconstruction aborts.
	Decompile(ctx context.Context, path string) (*Outcome, error)
}

// Disassembler turns compiled scripts into listings.
type Disassembler interface {
	NeedsDisassembly(path string) bool
	Disassemble(ctx context.Context, path string) (string, error)
}

// Reconstructor rebuilds source text from the lines of a listing.
type Reconstructor interface {
	Run(lines []string) (*core.Result, error)
}

// Writer persists reconstructed files.
type Writer interface {
	Write(source string, files *core.SourceMap) (*output.Manifest, error)
}

// Outcome is what one Decompile call produced.
type Outcome struct {
	// Listing is the disassembly that was read.
	Listing  string
	Result   *core.Result
	Manifest *output.Manifest
	// Report is nil unless reports are enabled.
	Report *verify.Report
}

type driverImpl struct {
	disassembler  Disassembler
	reconstructor Reconstructor
	writer        Writer

	counter  *core.KindCounter
	encoding string
	report   bool
	logger   *slog.Logger
}

func (d *driverImpl) Decompile(ctx context.Context, path string) (*Outcome, error) {
	listing := path

	if d.disassembler.NeedsDisassembly(path) {
		var err error

		listing, err = d.disassembler.Disassemble(ctx, path)
		if err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := d.readListing(listing)
	if err != nil {
		return nil, err
	}

	if d.counter != nil {
		d.counter.Reset()
	}

	result, err := d.reconstructor.Run(lines)
	if err != nil {
		return nil, err
	}

	d.logger.Info("reconstructed",
		"listing", listing,
		"files", result.Files.Len(),
		"instructions", result.Stats.Instructions,
		"placeholders", result.Stats.Placeholders,
		"line_warnings", len(result.Stats.LineWarnings),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	manifest, err := d.writer.Write(listing, result.Files)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Listing:  listing,
		Result:   result,
		Manifest: manifest,
	}

	if d.report {
		outcome.Report = verify.GenerateReport(listing, result, d.counter)
	}

	return outcome, nil
}

func (d *driverImpl) readListing(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open listing: %w", err)
	}
	defer f.Close()

	decoder, err := newDecoder(d.encoding)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(transform.NewReader(f, unicode.BOMOverride(decoder)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode listing %s: %w", path, err)
	}

	return strings.Split(string(data), "\n"), nil
}

// newDecoder returns the decoder for listings without a byte order mark.
func newDecoder(name string) (*encoding.Decoder, error) {
	var enc encoding.Encoding

	switch strings.ToLower(name) {
	case "", config.EncodingUTF8:
		enc = unicode.UTF8
	case config.EncodingUTF16LE:
		enc = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case config.EncodingUTF16BE:
		enc = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case config.EncodingShiftJIS:
		enc = japanese.ShiftJIS
	default:
		return nil, fmt.Errorf("%w: unsupported input encoding %q",
			config.ErrInvalidConfig, name)
	}

	return enc.NewDecoder(), nil
}
