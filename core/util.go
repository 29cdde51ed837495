package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	LevelTrace slog.Level = slog.LevelDebug - 4
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// PrintFatal writes the state of the buffer that a fatal error interrupted.
func PrintFatal(w io.Writer, fe *FatalError) {
	infoTable := table.NewWriter()
	infoTable.SetTitle("Reconstruction aborted")
	infoTable.AppendRows([]table.Row{
		{"File", fe.File},
		{"Line", fe.Line},
		{"Instruction", fe.Instruction.Raw},
		{"Error", fe.Err.Error()},
	})
	fmt.Fprintln(w, infoTable.Render())

	stackTable := table.NewWriter()
	stackTable.SetTitle("Fragment Stack (top first)")
	stackTable.AppendHeader(table.Row{"Depth", "Fragment"})
	for i := len(fe.Stack) - 1; i >= 0; i-- {
		stackTable.AppendRow(table.Row{len(fe.Stack) - i, fe.Stack[i]})
	}
	fmt.Fprintln(w, stackTable.Render())

	separator := strings.Repeat("=", 25)
	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, fe.Buffer)
	fmt.Fprintln(w, separator)
}
