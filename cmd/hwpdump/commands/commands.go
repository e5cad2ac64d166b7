// Package commands implements the hwpdump subcommands.
package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tsawler/hwp/cfb"
	"gopkg.in/yaml.v3"
)

// Exit codes.
const (
	ExitSuccess      = 0
	ExitCommandError = 1
	ExitDecodeError  = 2
)

// writeStructured writes v as json or yaml. It reports false for any other
// format so the caller can fall back to text.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, err
		}
		fmt.Fprintln(w, string(data))
		return true, nil
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return true, err
		}
		fmt.Fprint(w, string(data))
		return true, nil
	}
	return false, nil
}

// walkEntries calls fn for every entry below the root with its
// slash-separated path, depth first in directory order.
func walkEntries(c *cfb.Container, fn func(path string, e *cfb.Entry) error) error {
	var walk func(prefix string, e *cfb.Entry) error
	walk = func(prefix string, e *cfb.Entry) error {
		for _, child := range c.Children(e) {
			path := prefix + child.Name
			if err := fn(path, child); err != nil {
				return err
			}
			if child.IsStorage() {
				if err := walk(path+"/", child); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return walk("", c.Root())
}
