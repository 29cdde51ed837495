package core

import (
	"io"
	"log/slog"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"
)

type goldenSuite struct {
	Name  string       `yaml:"name"`
	Tests []goldenCase `yaml:"tests"`
}

type goldenCase struct {
	Name    string       `yaml:"name"`
	Listing string       `yaml:"listing"`
	Expect  goldenExpect `yaml:"expect"`
}

type goldenExpect struct {
	Files []goldenFile `yaml:"files"`
	Error string       `yaml:"error"`
}

type goldenFile struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

func loadGolden(path string) goldenSuite {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var suite goldenSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		panic(err)
	}

	return suite
}

var _ = Describe("Golden listings", func() {
	suite := loadGolden("testdata/golden.yaml")

	for _, tc := range suite.Tests {
		tc := tc

		It(tc.Name, func() {
			engine := NewBuilder().
				WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))).
				Build("Golden")

			r, err := engine.Run(strings.Split(tc.Listing, "\n"))

			if tc.Expect.Error != "" {
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring(tc.Expect.Error))
				Expect(r).To(BeNil())

				return
			}

			Expect(err).NotTo(HaveOccurred())

			names := make([]string, 0, len(tc.Expect.Files))
			for _, f := range tc.Expect.Files {
				names = append(names, f.Name)

				text, ok := r.Files.Get(f.Name)
				Expect(ok).To(BeTrue(), f.Name)
				Expect(text).To(Equal(f.Text), f.Name)
			}
			Expect(r.Files.Names()).To(Equal(names))
		})
	}
})
