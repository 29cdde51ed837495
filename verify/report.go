package verify

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/adhocdec/core"
	"github.com/sarchlab/adhocdec/instr"
)

// FileSummary describes one reconstructed file.
type FileSummary struct {
	Name  string
	Lines int
	Bytes int
}

// Report is the outcome of checking one reconstruction.
type Report struct {
	Source string
	Files  []FileSummary
	Stats  core.Stats
	Issues []Issue

	counter *core.KindCounter
}

// GenerateReport lints the result and collects its statistics. The counter
// is optional; when given, the histogram is broken down per file.
func GenerateReport(
	source string,
	result *core.Result,
	counter *core.KindCounter,
) *Report {
	r := &Report{
		Source:  source,
		Stats:   result.Stats,
		Issues:  RunLint(result),
		counter: counter,
	}

	for _, name := range result.Files.Names() {
		text, _ := result.Files.Get(name)

		lines := 0
		if text != "" {
			lines = strings.Count(text, "\n") + 1
		}

		r.Files = append(r.Files, FileSummary{
			Name:  name,
			Lines: lines,
			Bytes: len(text),
		})
	}

	return r
}

// CountIssues returns the number of issues of the given type.
func (r *Report) CountIssues(t IssueType) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Type == t {
			n++
		}
	}

	return n
}

// WriteReport writes a formatted report to a writer.
func (r *Report) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "RECONSTRUCTION REPORT: %s\n", r.Source)
	fmt.Fprintln(w, separator)

	fmt.Fprintln(w, r.filesTable())
	fmt.Fprintln(w, r.histogramTable())

	if len(r.Issues) == 0 {
		fmt.Fprintln(w, "No issues found.")
	} else {
		fmt.Fprintln(w, r.issuesTable())
	}

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Instructions: %d, placeholders: %d\n",
		r.Stats.Instructions, r.Stats.Placeholders)
	fmt.Fprintf(w, "Issues: %d (%d RECOVERY, %d LINE, %d STRUCT)\n",
		len(r.Issues),
		r.CountIssues(IssueRecovery),
		r.CountIssues(IssueLine),
		r.CountIssues(IssueStruct))
	fmt.Fprintln(w, separator)
}

// SaveReportToFile saves the report to a file.
func (r *Report) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)

	return nil
}

func (r *Report) filesTable() string {
	t := table.NewWriter()
	t.SetTitle("Files")
	t.AppendHeader(table.Row{"File", "Lines", "Bytes"})

	for _, f := range r.Files {
		t.AppendRow(table.Row{f.Name, f.Lines, f.Bytes})
	}

	return t.Render()
}

func (r *Report) histogramTable() string {
	kinds := make([]instr.Kind, 0, len(r.Stats.KindCounts))
	for k := range r.Stats.KindCounts {
		kinds = append(kinds, k)
	}

	sort.Slice(kinds, func(i, j int) bool {
		ci, cj := r.Stats.KindCounts[kinds[i]], r.Stats.KindCounts[kinds[j]]
		if ci != cj {
			return ci > cj
		}

		return kinds[i] < kinds[j]
	})

	var files []string
	if r.counter != nil {
		files = r.counter.Files()
	}

	header := table.Row{"Instruction"}
	for _, f := range files {
		header = append(header, f)
	}
	header = append(header, "Total")

	t := table.NewWriter()
	t.SetTitle("Instructions")
	t.AppendHeader(header)

	for _, k := range kinds {
		row := table.Row{k.String()}
		for _, f := range files {
			row = append(row, r.counter.Count(f, k))
		}
		row = append(row, r.Stats.KindCounts[k])

		t.AppendRow(row)
	}

	return t.Render()
}

func (r *Report) issuesTable() string {
	t := table.NewWriter()
	t.SetTitle("Issues")
	t.AppendHeader(table.Row{"Type", "Severity", "File", "Line", "Message"})

	for _, issue := range r.Issues {
		line := "-"
		if issue.Line > 0 {
			line = fmt.Sprint(issue.Line)
		}

		t.AppendRow(table.Row{
			issue.Type, issue.Severity, issue.File, line, issue.Message,
		})
	}

	return t.Render()
}
