package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var (
	headerColor  = color.New(color.Bold)
	successColor = color.New(color.FgGreen)
	mutedColor   = color.New(color.Faint)
)

// output formats command results as text tables or JSON.
type output struct {
	w      io.Writer
	format string
}

func newOutput(w io.Writer, format string) *output {
	return &output{w: w, format: format}
}

func (o *output) isJSON() bool {
	return o.format == formatJSON
}

func (o *output) json(data any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (o *output) table(header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	headerColor.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func (o *output) success(format string, args ...any) {
	successColor.Fprintf(o.w, format+"\n", args...)
}

func (o *output) muted(format string, args ...any) {
	mutedColor.Fprintf(o.w, format+"\n", args...)
}
