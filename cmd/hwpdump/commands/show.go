package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"

	"github.com/tsawler/hwp/record"
	"github.com/tsawler/hwp/reader"
)

// ShowOptions configures the show command.
type ShowOptions struct {
	Format     string // text, json, yaml
	Paragraphs bool
	File       string
}

// ShowOutput is the decoded structure of a document.
type ShowOutput struct {
	File     string          `json:"file" yaml:"file"`
	Version  string          `json:"version" yaml:"version"`
	Flags    []string        `json:"flags,omitempty" yaml:"flags,omitempty"`
	DocInfo  DocInfoSummary  `json:"docInfo" yaml:"docInfo"`
	Sections []SectionOutput `json:"sections" yaml:"sections"`
}

// DocInfoSummary counts the document-wide resources.
type DocInfoSummary struct {
	Sections    uint16 `json:"sections" yaml:"sections"`
	BinData     int    `json:"binData" yaml:"binData"`
	FaceNames   int    `json:"faceNames" yaml:"faceNames"`
	BorderFills int    `json:"borderFills" yaml:"borderFills"`
	CharShapes  int    `json:"charShapes" yaml:"charShapes"`
	ParaShapes  int    `json:"paraShapes" yaml:"paraShapes"`
	Styles      int    `json:"styles" yaml:"styles"`
}

// SectionOutput summarizes one section.
type SectionOutput struct {
	Index       int            `json:"index" yaml:"index"`
	Paragraphs  int            `json:"paragraphs" yaml:"paragraphs"`
	Controls    map[string]int `json:"controls,omitempty" yaml:"controls,omitempty"`
	Tables      []TableOutput  `json:"tables,omitempty" yaml:"tables,omitempty"`
	Skipped     map[string]int `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Unfulfilled []string       `json:"unfulfilled,omitempty" yaml:"unfulfilled,omitempty"`
	Text        []string       `json:"text,omitempty" yaml:"text,omitempty"`
}

// TableOutput describes a table's grid.
type TableOutput struct {
	Rows  int `json:"rows" yaml:"rows"`
	Cols  int `json:"cols" yaml:"cols"`
	Cells int `json:"cells" yaml:"cells"`
}

// RunShow runs the show command.
func RunShow(args []string, stdout, stderr io.Writer) int {
	opts, err := parseShowArgs(args)
	if errors.Is(err, flag.ErrHelp) {
		printShowUsage(stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}
	if opts.File == "" {
		fmt.Fprintln(stderr, "Error: no file specified")
		printShowUsage(stderr)
		return ExitCommandError
	}

	r, err := reader.Open(opts.File)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitDecodeError
	}
	defer r.Close()

	output := buildShowOutput(opts, r)

	if ok, err := writeStructured(stdout, opts.Format, output); ok {
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitCommandError
		}
		return ExitSuccess
	}

	writeShowText(stdout, output)
	return ExitSuccess
}

func buildShowOutput(opts ShowOptions, r *reader.Reader) ShowOutput {
	info := r.DocInfo()
	output := ShowOutput{
		File:    opts.File,
		Version: r.Version().String(),
		Flags:   r.Header().Flags.Names(),
		DocInfo: DocInfoSummary{
			Sections:    info.Properties.SectionCount,
			BinData:     len(info.BinData),
			FaceNames:   len(info.FaceNames),
			BorderFills: len(info.BorderFills),
			CharShapes:  len(info.CharShapes),
			ParaShapes:  len(info.ParaShapes),
			Styles:      len(info.Styles),
		},
	}

	for _, sec := range r.Sections() {
		so := SectionOutput{Index: sec.Index, Paragraphs: len(sec.Paragraphs)}
		for _, c := range sec.Controls {
			if so.Controls == nil {
				so.Controls = make(map[string]int)
			}
			so.Controls[c.Kind().String()]++
		}
		for _, t := range sec.Tables() {
			so.Tables = append(so.Tables, TableOutput{
				Rows:  t.Rows,
				Cols:  t.Cols,
				Cells: len(t.Cells),
			})
		}
		for _, s := range sec.Skipped {
			if so.Skipped == nil {
				so.Skipped = make(map[string]int)
			}
			so.Skipped[record.Tag(s.Tag).String()]++
		}
		for _, c := range sec.Unfulfilled() {
			so.Unfulfilled = append(so.Unfulfilled, fmt.Sprintf("%q at %d", c.ID.String(), c.Pos))
		}
		if opts.Paragraphs {
			for _, p := range sec.Paragraphs {
				so.Text = append(so.Text, p.Text())
			}
		}
		output.Sections = append(output.Sections, so)
	}
	return output
}

func writeShowText(w io.Writer, output ShowOutput) {
	fmt.Fprintf(w, "File: %s\n", output.File)
	fmt.Fprintf(w, "Version: %s\n", output.Version)
	if len(output.Flags) > 0 {
		fmt.Fprintf(w, "Flags: %v\n", output.Flags)
	}

	d := output.DocInfo
	fmt.Fprintln(w, "\nDocInfo:")
	fmt.Fprintf(w, "  Sections:     %d\n", d.Sections)
	fmt.Fprintf(w, "  BinData:      %d\n", d.BinData)
	fmt.Fprintf(w, "  Face names:   %d\n", d.FaceNames)
	fmt.Fprintf(w, "  Border fills: %d\n", d.BorderFills)
	fmt.Fprintf(w, "  Char shapes:  %d\n", d.CharShapes)
	fmt.Fprintf(w, "  Para shapes:  %d\n", d.ParaShapes)
	fmt.Fprintf(w, "  Styles:       %d\n", d.Styles)

	for _, s := range output.Sections {
		fmt.Fprintf(w, "\nSection %d: %d paragraph(s)\n", s.Index, s.Paragraphs)
		for _, k := range sortedKeys(s.Controls) {
			fmt.Fprintf(w, "  %-12s %d\n", k, s.Controls[k])
		}
		for i, t := range s.Tables {
			fmt.Fprintf(w, "  Table %d: %dx%d, %d cell(s)\n", i+1, t.Rows, t.Cols, t.Cells)
		}
		for _, k := range sortedKeys(s.Skipped) {
			fmt.Fprintf(w, "  Skipped %s x%d\n", k, s.Skipped[k])
		}
		for _, u := range s.Unfulfilled {
			fmt.Fprintf(w, "  Unfulfilled %s\n", u)
		}
		for _, line := range s.Text {
			fmt.Fprintf(w, "  | %s\n", line)
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseShowArgs(args []string) (ShowOptions, error) {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	opts := ShowOptions{}

	fs.StringVar(&opts.Format, "format", "text", "Output format (text, json, yaml)")
	fs.StringVar(&opts.Format, "f", "text", "Output format (shorthand)")
	fs.BoolVar(&opts.Paragraphs, "paragraphs", false, "Include top-level paragraph text")
	fs.BoolVar(&opts.Paragraphs, "p", false, "Include paragraph text (shorthand)")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		opts.File = remaining[0]
	}
	return opts, nil
}

func printShowUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: hwpdump show [options] <file>

Options:
  -f, --format       Output format (text, json, yaml) [default: text]
  -p, --paragraphs   Include top-level paragraph text

Examples:
  hwpdump show report.hwp
  hwpdump show -p --format yaml report.hwp`)
}
