package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Режимы цвета для --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// resolveColors решает, красить ли вывод. auto уважает NO_COLOR и TERM=dumb.
func resolveColors(mode string) (bool, error) {
	switch mode {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto, "":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}

		return os.Getenv("TERM") != "dumb", nil
	default:
		return false, fmt.Errorf("invalid color mode %q: must be auto, always or never", mode)
	}
}

// printer - форматированный вывод в терминал.
type printer struct {
	out       io.Writer
	useColors bool
}

func (p *printer) paint(attr color.Attribute, s string) string {
	if !p.useColors {
		return s
	}

	c := color.New(attr)
	c.EnableColor()

	return c.Sprint(s)
}

func (p *printer) Bold(s string) string { return p.paint(color.Bold, s) }
func (p *printer) Dim(s string) string  { return p.paint(color.Faint, s) }

func (p *printer) Header(format string, args ...any) {
	fmt.Fprintln(p.out, p.paint(color.FgCyan, fmt.Sprintf(format, args...)))
}

func (p *printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.paint(color.FgGreen, "✓ "+fmt.Sprintf(format, args...)))
}

func (p *printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.out, p.paint(color.FgYellow, "! "+fmt.Sprintf(format, args...)))
}

func (p *printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// table печатает строки без рамок, выравнивание по левому краю.
func (p *printer) table(header []string, rows [][]string) error {
	t := tablewriter.NewTable(p.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	t.Header(header)

	if err := t.Bulk(rows); err != nil {
		return err
	}

	return t.Render()
}
