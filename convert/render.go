package convert

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/prgtools/prgconv/prg"
)

// RenderProgram writes a console dump of program to w: a table with the header
// timing fields followed by a table with one row per step.
//
// Rounded, colored tables are used when w is a terminal, plain ASCII tables otherwise.
func RenderProgram(w io.Writer, program *prg.Program) error {
	colorize := isTerminal(w)

	header := program.Header()
	headerTable := newTable(colorize)
	headerTable.AppendHeader(table.Row{"Wait L", "Wait R"})
	headerTable.AppendRow(table.Row{header.WaitL, header.WaitR})
	headerTable.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
	})

	stepHeader := make(table.Row, 0, 1+prg.Actuators+prg.GroupOffsets)
	stepHeader = append(stepHeader, "Quote")
	for i := 1; i <= prg.Actuators; i++ {
		stepHeader = append(stepHeader, strconv.Itoa(i))
	}
	stepHeader = append(stepHeader, "L", "R")

	stepTable := newTable(colorize)
	stepTable.AppendHeader(stepHeader)
	for _, step := range program.Steps() {
		row := make(table.Row, 0, len(stepHeader))
		row = append(row, step.Quote)
		for _, p := range step.P {
			row = append(row, p)
		}
		row = append(row, step.L, step.R)
		stepTable.AppendRow(row)
	}
	stepTable.AppendFooter(table.Row{fmt.Sprintf("%d steps", program.Len())})

	configs := make([]table.ColumnConfig, 0, len(stepHeader))
	for i := range stepHeader {
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: text.AlignRight})
	}
	stepTable.SetColumnConfigs(configs)

	_, err := fmt.Fprintf(w, "%s\n\n%s\n", headerTable.Render(), stepTable.Render())

	return err
}

func newTable(colorize bool) table.Writer {
	tw := table.NewWriter()
	if colorize {
		tw.SetStyle(table.StyleRounded)
		tw.Style().Color.Header = text.Colors{text.FgHiBlue, text.Bold}
	} else {
		tw.SetStyle(table.StyleDefault)
	}
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault

	return tw
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
