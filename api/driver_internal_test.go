package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"

	"github.com/sarchlab/adhocdec/config"
	"github.com/sarchlab/adhocdec/core"
	"github.com/sarchlab/adhocdec/disasm"
	"github.com/sarchlab/adhocdec/output"
)

const sampleListing = "ADHOC DISASSEMBLY\n" +
	"Original File Name: main.ad\n" +
	"\n" +
	"    0|    1|    0| VARIABLE_PUSH: v,\n" +
	"    1|    1|    0| INT_CONST: 5\n" +
	"    2|    1|    0| BINARY_ASSIGN_OPERATOR: __add__\n" +
	"    3|    1|    0| POP\n"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ = Describe("Driver", func() {
	var (
		mockCtrl          *gomock.Controller
		mockDisassembler  *MockDisassembler
		mockReconstructor *MockReconstructor
		mockWriter        *MockWriter
		driver            *driverImpl
		dir               string
		result            *core.Result
	)

	writeFile := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, data, 0o644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockDisassembler = NewMockDisassembler(mockCtrl)
		mockReconstructor = NewMockReconstructor(mockCtrl)
		mockWriter = NewMockWriter(mockCtrl)

		driver = &driverImpl{
			disassembler:  mockDisassembler,
			reconstructor: mockReconstructor,
			writer:        mockWriter,
			encoding:      config.EncodingUTF8,
			logger:        discardLogger(),
		}

		dir = GinkgoT().TempDir()

		files := core.NewSourceMap()
		files.Set("main.ad", "v += 5;")
		result = &core.Result{Files: files}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should reconstruct a listing and write it", func() {
		path := writeFile("main.ad.diss", []byte(sampleListing))
		manifest := &output.Manifest{Source: path}

		mockDisassembler.EXPECT().NeedsDisassembly(path).Return(false)
		mockReconstructor.EXPECT().
			Run(gomock.Any()).
			DoAndReturn(func(lines []string) (*core.Result, error) {
				Expect(lines[1]).To(Equal("Original File Name: main.ad"))
				Expect(lines[6]).To(ContainSubstring("POP"))
				return result, nil
			})
		mockWriter.EXPECT().Write(path, result.Files).Return(manifest, nil)

		outcome, err := driver.Decompile(context.Background(), path)

		Expect(err).NotTo(HaveOccurred())
		Expect(outcome.Listing).To(Equal(path))
		Expect(outcome.Result).To(BeIdenticalTo(result))
		Expect(outcome.Manifest).To(BeIdenticalTo(manifest))
		Expect(outcome.Report).To(BeNil())
	})

	It("should disassemble compiled scripts first", func() {
		listing := writeFile("boot.ad.diss", []byte(sampleListing))

		mockDisassembler.EXPECT().NeedsDisassembly("boot.adc").Return(true)
		mockDisassembler.EXPECT().
			Disassemble(gomock.Any(), "boot.adc").
			Return(listing, nil)
		mockReconstructor.EXPECT().Run(gomock.Any()).Return(result, nil)
		mockWriter.EXPECT().Write(listing, result.Files).Return(&output.Manifest{}, nil)

		outcome, err := driver.Decompile(context.Background(), "boot.adc")

		Expect(err).NotTo(HaveOccurred())
		Expect(outcome.Listing).To(Equal(listing))
	})

	It("should stop when the disassembler cannot be found", func() {
		mockDisassembler.EXPECT().NeedsDisassembly("boot.adc").Return(true)
		mockDisassembler.EXPECT().
			Disassemble(gomock.Any(), "boot.adc").
			Return("", fmt.Errorf("%w: GTAdhocTools.exe", disasm.ErrExecutableNotFound))

		_, err := driver.Decompile(context.Background(), "boot.adc")

		Expect(err).To(MatchError(disasm.ErrExecutableNotFound))
	})

	It("should pass fatal errors through without writing", func() {
		path := writeFile("main.ad.diss", []byte(sampleListing))
		fatal := &core.FatalError{Err: core.ErrUnknownMnemonic, File: "main.ad"}

		mockDisassembler.EXPECT().NeedsDisassembly(path).Return(false)
		mockReconstructor.EXPECT().Run(gomock.Any()).Return(nil, fatal)

		_, err := driver.Decompile(context.Background(), path)

		var fe *core.FatalError
		Expect(errors.As(err, &fe)).To(BeTrue())
		Expect(fe).To(BeIdenticalTo(fatal))
	})

	It("should stop on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		mockDisassembler.EXPECT().NeedsDisassembly("main.ad.diss").Return(false)

		_, err := driver.Decompile(ctx, "main.ad.diss")

		Expect(err).To(MatchError(context.Canceled))
	})

	It("should report a missing listing", func() {
		mockDisassembler.EXPECT().NeedsDisassembly(gomock.Any()).Return(false)

		_, err := driver.Decompile(context.Background(), filepath.Join(dir, "none"))

		Expect(err).To(MatchError(os.ErrNotExist))
	})

	It("should generate a report when enabled", func() {
		path := writeFile("main.ad.diss", []byte(sampleListing))
		driver.report = true
		driver.counter = core.NewKindCounter()

		mockDisassembler.EXPECT().NeedsDisassembly(path).Return(false)
		mockReconstructor.EXPECT().Run(gomock.Any()).Return(result, nil)
		mockWriter.EXPECT().Write(path, result.Files).Return(&output.Manifest{}, nil)

		outcome, err := driver.Decompile(context.Background(), path)

		Expect(err).NotTo(HaveOccurred())
		Expect(outcome.Report).NotTo(BeNil())
		Expect(outcome.Report.Source).To(Equal(path))
		Expect(outcome.Report.Files[0].Name).To(Equal("main.ad"))
	})

	Context("when decoding listings", func() {
		It("should honour a UTF-16 byte order mark", func() {
			encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).
				NewEncoder().String(sampleListing)
			Expect(err).NotTo(HaveOccurred())
			path := writeFile("wide.ad.diss", []byte(encoded))

			lines, err := driver.readListing(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(strings.Join(lines, "\n")).To(Equal(sampleListing))
		})

		It("should strip a UTF-8 byte order mark", func() {
			path := writeFile("bom.ad.diss", append([]byte{0xEF, 0xBB, 0xBF}, sampleListing...))

			lines, err := driver.readListing(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(lines[0]).To(Equal("ADHOC DISASSEMBLY"))
		})

		It("should apply the configured encoding without a mark", func() {
			text := "    0|    1|    0| STRING_CONST: 名前\n"
			encoded, err := japanese.ShiftJIS.NewEncoder().String(text)
			Expect(err).NotTo(HaveOccurred())
			path := writeFile("sjis.ad.diss", []byte(encoded))
			driver.encoding = config.EncodingShiftJIS

			lines, err := driver.readListing(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(lines[0]).To(Equal(strings.TrimSuffix(text, "\n")))
		})

		It("should refuse unknown encodings", func() {
			path := writeFile("x.ad.diss", []byte(sampleListing))
			driver.encoding = "ebcdic"

			_, err := driver.readListing(path)

			Expect(err).To(MatchError(config.ErrInvalidConfig))
		})
	})
})

var _ = Describe("DriverBuilder", func() {
	It("should wire the engine and the writer", func() {
		dir := GinkgoT().TempDir()
		input := filepath.Join(dir, "main.ad.diss")
		Expect(os.WriteFile(input, []byte(sampleListing), 0o644)).To(Succeed())

		c := config.Default()
		c.OutputRoot = filepath.Join(dir, "generated")
		c.Report = true
		c.Manifest = true

		driver := NewDriverBuilder().
			WithConfig(c).
			WithLogger(discardLogger()).
			WithTrace(true).
			Build("Driver")

		outcome, err := driver.Decompile(context.Background(), input)
		Expect(err).NotTo(HaveOccurred())

		data, err := os.ReadFile(filepath.Join(c.OutputRoot, "main.adcomp"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("v += 5;"))

		_, err = os.Stat(filepath.Join(c.OutputRoot, output.ManifestName))
		Expect(err).NotTo(HaveOccurred())

		Expect(outcome.Report).NotTo(BeNil())
		Expect(outcome.Report.Stats.Instructions).To(Equal(4))
	})
})
