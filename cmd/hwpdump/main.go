// hwpdump is a CLI tool for inspecting HWP documents.
package main

import (
	"fmt"
	"os"

	"github.com/tsawler/hwp/cmd/hwpdump/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(commands.ExitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "entries":
		exitCode = commands.RunEntries(args, os.Stdout, os.Stderr)
	case "show":
		exitCode = commands.RunShow(args, os.Stdout, os.Stderr)
	case "extract":
		exitCode = commands.RunExtract(args, os.Stdout, os.Stderr)
	case "text":
		exitCode = commands.RunText(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = commands.ExitSuccess
	case "version", "-v", "--version":
		fmt.Println("hwpdump version 0.1.0")
		exitCode = commands.ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = commands.ExitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`hwpdump - HWP document inspection tool

Usage:
  hwpdump <command> [options] <file>

Commands:
  entries    List the compound file storages and streams
  show       Display the decoded document structure
  extract    Write container streams to a directory
  text       Print the document as text, markdown or HTML

Options:
  -h, --help     Show this help message
  -v, --version  Show version information

Examples:
  hwpdump entries report.hwp
  hwpdump show --format yaml report.hwp
  hwpdump extract --decode -o out/ report.hwp
  hwpdump text --format markdown report.hwp

For command-specific help, run:
  hwpdump <command> --help`)
}
