package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/adhocdec/config"
	"github.com/sarchlab/adhocdec/core"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	write := func(content string) string {
		path := filepath.Join(dir, "adhocdec.yaml")
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	It("should provide usable defaults", func() {
		c := config.Default()
		Expect(c.Validate()).To(Succeed())
		Expect(c.OutputRoot).To(Equal("generated"))
		Expect(c.Disassembler.Executable).To(Equal("GTAdhocTools.exe"))
		Expect(c.Disassembler.BytecodeExt).To(Equal(".adc"))
		Expect(c.Disassembler.ListingSuffix).To(Equal(".ad.diss"))
		Expect(c.InputEncoding).To(Equal(config.EncodingUTF8))
	})

	It("should keep defaults for keys missing from the file", func() {
		c, err := config.Load(write(`
output_root: out
input_encoding: utf-16le
log:
  level: debug
report: true
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(c.OutputRoot).To(Equal("out"))
		Expect(c.InputEncoding).To(Equal(config.EncodingUTF16LE))
		Expect(c.Log.Level).To(Equal("debug"))
		Expect(c.Log.Format).To(Equal(config.LogFormatText))
		Expect(c.Report).To(BeTrue())
		Expect(c.Manifest).To(BeFalse())
		Expect(c.Disassembler.Executable).To(Equal("GTAdhocTools.exe"))
	})

	It("should reject unknown encodings", func() {
		_, err := config.Load(write("input_encoding: latin-9\n"))
		Expect(err).To(MatchError(config.ErrInvalidConfig))
	})

	It("should reject unknown log formats and levels", func() {
		_, err := config.Load(write("log:\n  format: xml\n"))
		Expect(err).To(MatchError(config.ErrInvalidConfig))

		_, err = config.Load(write("log:\n  level: loud\n"))
		Expect(err).To(MatchError(config.ErrInvalidConfig))
	})

	It("should reject malformed YAML", func() {
		_, err := config.Load(write("output_root: [\n"))
		Expect(err).To(HaveOccurred())
	})

	It("should report a missing file", func() {
		_, err := config.Load(filepath.Join(dir, "missing.yaml"))
		Expect(err).To(MatchError(os.ErrNotExist))
	})
})

var _ = Describe("Logger", func() {
	It("should map trace to the trace level", func() {
		level, err := config.ParseLevel("TRACE")
		Expect(err).NotTo(HaveOccurred())
		Expect(level).To(Equal(core.LevelTrace))

		level, err = config.ParseLevel("warn")
		Expect(err).NotTo(HaveOccurred())
		Expect(level).To(Equal(slog.LevelWarn))
	})

	It("should write JSON to the fallback writer", func() {
		var buf bytes.Buffer
		logger, closer, err := config.NewLogger(config.LogConfig{
			Level:  "info",
			Format: config.LogFormatJSON,
		}, &buf)
		Expect(err).NotTo(HaveOccurred())
		defer closer.Close()

		logger.Info("hello", "file", "main.ad")
		logger.Debug("hidden")

		Expect(buf.String()).To(ContainSubstring(`"msg":"hello"`))
		Expect(buf.String()).To(ContainSubstring(`"file":"main.ad"`))
		Expect(buf.String()).NotTo(ContainSubstring("hidden"))
	})

	It("should write to the log file when configured", func() {
		path := filepath.Join(GinkgoT().TempDir(), "run.log")

		var buf bytes.Buffer
		logger, closer, err := config.NewLogger(config.LogConfig{
			Level:  "debug",
			Format: config.LogFormatText,
			File:   path,
		}, &buf)
		Expect(err).NotTo(HaveOccurred())

		logger.Debug("into file")
		Expect(closer.Close()).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(strings.Contains(string(data), "into file")).To(BeTrue())
		Expect(buf.Len()).To(Equal(0))
	})
})
