package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/hwp/cfb"
)

// EntriesOptions configures the entries command.
type EntriesOptions struct {
	Format string // text, json, yaml
	File   string
}

// EntriesOutput describes a compound file's layout.
type EntriesOutput struct {
	File           string        `json:"file" yaml:"file"`
	MajorVersion   int           `json:"majorVersion" yaml:"majorVersion"`
	SectorSize     int           `json:"sectorSize" yaml:"sectorSize"`
	MiniSectorSize int           `json:"miniSectorSize" yaml:"miniSectorSize"`
	Entries        []EntryOutput `json:"entries" yaml:"entries"`
}

// EntryOutput represents a single directory entry.
type EntryOutput struct {
	Path string `json:"path" yaml:"path"`
	Kind string `json:"kind" yaml:"kind"`
	Size uint64 `json:"size,omitempty" yaml:"size,omitempty"`
	Mini bool   `json:"mini,omitempty" yaml:"mini,omitempty"`
}

// RunEntries runs the entries command.
func RunEntries(args []string, stdout, stderr io.Writer) int {
	opts, err := parseEntriesArgs(args)
	if errors.Is(err, flag.ErrHelp) {
		printEntriesUsage(stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}
	if opts.File == "" {
		fmt.Fprintln(stderr, "Error: no file specified")
		printEntriesUsage(stderr)
		return ExitCommandError
	}

	data, err := os.ReadFile(opts.File)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}
	c, err := cfb.OpenBytes(data)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitDecodeError
	}

	output := EntriesOutput{
		File:           opts.File,
		MajorVersion:   c.MajorVersion(),
		SectorSize:     c.SectorSize(),
		MiniSectorSize: c.MiniSectorSize(),
	}
	walkEntries(c, func(path string, e *cfb.Entry) error {
		entry := EntryOutput{Path: path, Kind: e.Kind.String()}
		if e.IsStream() {
			entry.Size = e.Size
			entry.Mini = e.InMiniStream()
		}
		output.Entries = append(output.Entries, entry)
		return nil
	})

	if ok, err := writeStructured(stdout, opts.Format, output); ok {
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitCommandError
		}
		return ExitSuccess
	}

	fmt.Fprintf(stdout, "File: %s\n", output.File)
	fmt.Fprintf(stdout, "Version: %d (sector %d, mini sector %d)\n\n",
		output.MajorVersion, output.SectorSize, output.MiniSectorSize)
	for _, e := range output.Entries {
		switch {
		case e.Kind != "stream":
			fmt.Fprintf(stdout, "  %-40s %s\n", e.Path+"/", e.Kind)
		case e.Mini:
			fmt.Fprintf(stdout, "  %-40s %d bytes (mini)\n", e.Path, e.Size)
		default:
			fmt.Fprintf(stdout, "  %-40s %d bytes\n", e.Path, e.Size)
		}
	}
	fmt.Fprintf(stdout, "\nTotal: %d entries\n", len(output.Entries))
	return ExitSuccess
}

func parseEntriesArgs(args []string) (EntriesOptions, error) {
	fs := flag.NewFlagSet("entries", flag.ContinueOnError)
	opts := EntriesOptions{}

	fs.StringVar(&opts.Format, "format", "text", "Output format (text, json, yaml)")
	fs.StringVar(&opts.Format, "f", "text", "Output format (shorthand)")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		opts.File = remaining[0]
	}
	return opts, nil
}

func printEntriesUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: hwpdump entries [options] <file>

Options:
  -f, --format    Output format (text, json, yaml) [default: text]

Examples:
  hwpdump entries report.hwp
  hwpdump entries --format json report.hwp`)
}
