package verify

import (
	"fmt"
	"strings"

	"github.com/sarchlab/adhocdec/core"
)

const stringPushMarker = "<STRING_PUSH>"

// RunLint performs the checks on every file of the result, in file order.
func RunLint(result *core.Result) []Issue {
	var issues []Issue

	for _, name := range result.Files.Names() {
		text, _ := result.Files.Get(name)
		issues = append(issues, lintFile(name, text)...)
	}

	for _, w := range result.Stats.LineWarnings {
		issues = append(issues, Issue{
			Type:     IssueLine,
			Severity: SeverityWarning,
			File:     w.File,
			Line:     w.Line + 1,
			Message: fmt.Sprintf("%d fragment(s) carried over the end of the line",
				len(w.Stack)),
			Details: map[string]interface{}{
				"stack": w.Stack,
			},
		})
	}

	if result.Stats.OpenArrays > 0 {
		issues = append(issues, Issue{
			Type:     IssueStruct,
			Severity: SeverityWarning,
			Line:     -1,
			Message: fmt.Sprintf("%d array literal(s) still open at the end of the listing",
				result.Stats.OpenArrays),
		})
	}

	return issues
}

func lintFile(name, text string) []Issue {
	var issues []Issue

	for idx, line := range strings.Split(text, "\n") {
		lineNo := idx + 1

		unknown := strings.Count(line, core.UnknownValue)
		missing := strings.Count(line, core.MissingValue)
		if unknown+missing > 0 {
			issues = append(issues, Issue{
				Type:     IssueRecovery,
				Severity: SeverityWarning,
				File:     name,
				Line:     lineNo,
				Message: fmt.Sprintf("%d placeholder(s) for missing values",
					unknown+missing),
				Details: map[string]interface{}{
					"unknown": unknown,
					"missing": missing,
				},
			})
		}

		if strings.Contains(line, stringPushMarker) {
			issues = append(issues, Issue{
				Type:     IssueStruct,
				Severity: SeverityWarning,
				File:     name,
				Line:     lineNo,
				Message:  "unresolved STRING_PUSH",
			})
		}
	}

	if open := openBlocks(text); open != 0 {
		issues = append(issues, Issue{
			Type:     IssueStruct,
			Severity: SeverityInfo,
			File:     name,
			Line:     -1,
			Message:  fmt.Sprintf("%d block(s) without a closing brace", open),
			Details: map[string]interface{}{
				"open": open,
			},
		})
	}

	return issues
}

// openBlocks counts braces outside of string literals. The result is
// negative when there are more closing braces than opening ones.
func openBlocks(text string) int {
	depth := 0
	inString := false
	escaped := false

	for _, r := range text {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && inString:
			escaped = true
		case r == '"':
			inString = !inString
		case r == '\n':
			inString = false
		case inString:
		case r == '{':
			depth++
		case r == '}':
			depth--
		}
	}

	return depth
}
