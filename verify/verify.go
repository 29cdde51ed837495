// Package verify inspects reconstructed sources for the spots where the
// reconstruction had to guess or gave up.
//
// RunLint walks every file of a core.Result and reports:
//
//   - RECOVERY: placeholder values synthesized for missing stack fragments
//   - LINE: line boundaries crossed with fragments left on the stack
//   - STRUCT: unresolved STRING_PUSH markers, array literals left open at the
//     end of the listing, and blocks whose closing brace is not in the text
//
// GenerateReport bundles the issues with per-file sizes and the instruction
// histogram, and WriteReport renders everything as tables.
package verify

// IssueType categorizes lint issues.
type IssueType string

const (
	IssueRecovery IssueType = "RECOVERY"
	IssueLine     IssueType = "LINE"
	IssueStruct   IssueType = "STRUCT"
)

// Severity tells how much an issue affects the readability of the output.
type Severity string

const (
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// Issue represents a single lint issue.
type Issue struct {
	Type     IssueType
	Severity Severity
	File     string // empty if not tied to a file
	Line     int    // 1-based, -1 if not applicable
	Message  string
	Details  map[string]interface{}
}
