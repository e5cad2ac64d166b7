package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/hwp/cfb"
	"github.com/tsawler/hwp/reader"
)

// ExtractOptions configures the extract command.
type ExtractOptions struct {
	Output string
	Decode bool
	File   string
}

// RunExtract runs the extract command.
func RunExtract(args []string, stdout, stderr io.Writer) int {
	opts, err := parseExtractArgs(args)
	if errors.Is(err, flag.ErrHelp) {
		printExtractUsage(stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}
	if opts.File == "" {
		fmt.Fprintln(stderr, "Error: no file specified")
		printExtractUsage(stderr)
		return ExitCommandError
	}

	r, err := reader.Open(opts.File)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitDecodeError
	}
	defer r.Close()

	if err := os.MkdirAll(opts.Output, 0o755); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}

	exitCode := ExitSuccess
	written := 0
	c := r.Container()
	err = walkEntries(c, func(path string, e *cfb.Entry) error {
		target := filepath.Join(opts.Output, localPath(path))
		if e.IsStorage() {
			return os.MkdirAll(target, 0o755)
		}

		var data []byte
		var err error
		if opts.Decode {
			data, err = r.DecodedStream(path)
		} else {
			data, err = c.Read(e)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Warning: %s: %v\n", path, err)
			exitCode = ExitDecodeError
			return nil
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "  %-40s %d bytes\n", path, len(data))
		written++
		return nil
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}

	fmt.Fprintf(stdout, "\nWrote %d stream(s) to %s\n", written, opts.Output)
	return exitCode
}

// localPath maps a container path to a relative file path. Control
// characters, such as the 0x05 prefix of property set streams, and path
// separators inside names are replaced.
func localPath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		p = strings.Map(func(r rune) rune {
			if r < 0x20 || r == '\\' || r == ':' {
				return '_'
			}
			return r
		}, p)
		if p == "" || p == "." || p == ".." {
			p = "_" + p
		}
		parts[i] = p
	}
	return filepath.Join(parts...)
}

func parseExtractArgs(args []string) (ExtractOptions, error) {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	opts := ExtractOptions{}

	fs.StringVar(&opts.Output, "output", ".", "Output directory")
	fs.StringVar(&opts.Output, "o", ".", "Output directory (shorthand)")
	fs.BoolVar(&opts.Decode, "decode", false, "Decrypt and inflate streams before writing")
	fs.BoolVar(&opts.Decode, "d", false, "Decode streams (shorthand)")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		opts.File = remaining[0]
	}
	return opts, nil
}

func printExtractUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: hwpdump extract [options] <file>

Options:
  -o, --output   Output directory [default: .]
  -d, --decode   Decrypt and inflate DocInfo, section and BinData streams

Examples:
  hwpdump extract -o out/ report.hwp
  hwpdump extract --decode -o out/ report.hwp`)
}
