// Package console renders the human-readable per-file progress lines and
// the end-of-run summary table. Diagnostics go to the structured logger;
// this package is only the operator-facing surface.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"codecsweep/pkg/models"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	cyan   = color.New(color.FgCyan)
)

// Console writes progress lines to a single destination, stdout by default.
type Console struct {
	out io.Writer
}

func New() *Console {
	return &Console{out: os.Stdout}
}

// NewWithWriter is used by tests to capture output.
func NewWithWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Infof prints a plain progress line.
func (c *Console) Infof(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Codec prints the probed source codec for a file about to be converted.
func (c *Console) Codec(codec string) {
	cyan.Fprintf(c.out, "Current codec: %s\n", codec)
}

// Skipped marks a file already in the target codec.
func (c *Console) Skipped(name, codec string) {
	yellow.Fprintf(c.out, "⊙ Skipping %s (already %s)\n", name, codec)
}

// Converting announces a conversion attempt.
func (c *Console) Converting(name string) {
	fmt.Fprintf(c.out, "Converting: %s\n", name)
}

// Converted marks a successful conversion.
func (c *Console) Converted(name string) {
	green.Fprintf(c.out, "✓ Successfully converted: %s\n", name)
}

// Failed marks a per-file failure with the underlying error.
func (c *Console) Failed(name string, err error) {
	red.Fprintf(c.out, "✗ Error converting %s: %v\n", name, err)
}

// Blank prints an empty line between per-file blocks.
func (c *Console) Blank() {
	fmt.Fprintln(c.out)
}

// Summary renders the final run summary block.
func (c *Console) Summary(sum models.RunSummary) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Conversion complete!")

	t := table.NewWriter()
	t.SetOutputMirror(c.out)
	t.AppendHeader(table.Row{"Total", "Converted", "Skipped", "Failed"})
	t.AppendRow(table.Row{sum.Total, sum.Converted, sum.Skipped, sum.Failed})
	t.SetStyle(table.StyleLight)
	t.Render()
}
