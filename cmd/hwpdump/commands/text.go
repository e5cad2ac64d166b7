package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/hwp"
)

// TextOptions configures the text command.
type TextOptions struct {
	Format         string // text, markdown, html
	Sections       string
	NoHeaderFooter bool
	NoFootnotes    bool
	Captions       bool
	OCR            bool
	OCRLanguage    string
	ShowWarnings   bool
	File           string
}

// RunText runs the text command.
func RunText(args []string, stdout, stderr io.Writer) int {
	opts, err := parseTextArgs(args)
	if errors.Is(err, flag.ErrHelp) {
		printTextUsage(stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}
	if opts.File == "" {
		fmt.Fprintln(stderr, "Error: no file specified")
		printTextUsage(stderr)
		return ExitCommandError
	}

	ext := hwp.Open(opts.File)
	if opts.Sections != "" {
		sections, err := parseSectionList(opts.Sections)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitCommandError
		}
		ext = ext.Sections(sections...)
	}
	if opts.NoHeaderFooter {
		ext = ext.ExcludeHeadersAndFooters()
	}
	if opts.NoFootnotes {
		ext = ext.ExcludeFootnotes()
	}
	if opts.Captions {
		ext = ext.IncludeCaptions()
	}
	if opts.OCR {
		ext = ext.OCRImages(opts.OCRLanguage)
	}

	var out string
	var warnings []hwp.Warning
	switch opts.Format {
	case "text", "":
		out, warnings, err = ext.Text()
	case "markdown", "md":
		out, warnings, err = ext.ToMarkdown()
	case "html":
		out, warnings, err = ext.HTML()
	default:
		ext.Close()
		fmt.Fprintf(stderr, "Error: unknown format %q\n", opts.Format)
		return ExitCommandError
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitDecodeError
	}

	fmt.Fprint(stdout, out)
	if len(out) > 0 && out[len(out)-1] != '\n' {
		fmt.Fprintln(stdout)
	}
	if opts.ShowWarnings {
		for _, w := range warnings {
			fmt.Fprintf(stderr, "Warning: %s\n", w)
		}
	}
	return ExitSuccess
}

// parseSectionList parses a comma separated list of 1-indexed sections
// and ranges, e.g. "1,3-5".
func parseSectionList(s string) ([]int, error) {
	var sections []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("invalid section %q", part)
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(hi); err != nil || end < start {
				return nil, fmt.Errorf("invalid section range %q", part)
			}
		}
		for i := start; i <= end; i++ {
			sections = append(sections, i)
		}
	}
	return sections, nil
}

func parseTextArgs(args []string) (TextOptions, error) {
	fs := flag.NewFlagSet("text", flag.ContinueOnError)
	opts := TextOptions{}

	fs.StringVar(&opts.Format, "format", "text", "Output format (text, markdown, html)")
	fs.StringVar(&opts.Format, "f", "text", "Output format (shorthand)")
	fs.StringVar(&opts.Sections, "sections", "", "Sections to extract, e.g. 1,3-5")
	fs.StringVar(&opts.Sections, "s", "", "Sections (shorthand)")
	fs.BoolVar(&opts.NoHeaderFooter, "no-header-footer", false, "Leave headers and footers out")
	fs.BoolVar(&opts.NoFootnotes, "no-footnotes", false, "Leave footnotes and endnotes out")
	fs.BoolVar(&opts.Captions, "captions", false, "Include table and picture captions")
	fs.BoolVar(&opts.OCR, "ocr", false, "Run OCR over embedded pictures")
	fs.StringVar(&opts.OCRLanguage, "ocr-lang", "", "OCR language set [default: kor+eng]")
	fs.BoolVar(&opts.ShowWarnings, "warnings", false, "Print warnings to stderr")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		opts.File = remaining[0]
	}
	return opts, nil
}

func printTextUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: hwpdump text [options] <file>

Options:
  -f, --format         Output format (text, markdown, html) [default: text]
  -s, --sections       Sections to extract, e.g. 1,3-5
  --no-header-footer   Leave headers and footers out
  --no-footnotes       Leave footnotes and endnotes out
  --captions           Include table and picture captions
  --ocr                Run OCR over embedded pictures (needs an "ocr" build)
  --ocr-lang           OCR language set [default: kor+eng]
  --warnings           Print warnings to stderr

Examples:
  hwpdump text report.hwp
  hwpdump text --format markdown -s 2 report.hwp`)
}
