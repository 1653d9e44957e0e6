package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
)

func newPrintCmd(opts *rootOptions) *cobra.Command {
	var format string
	var indent bool
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the generated Swagger document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return printDocument(cmd.OutOrStdout(), cfg, format, indent)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().BoolVar(&indent, "indent", false, "indent JSON output")
	return cmd
}

func printDocument(w io.Writer, cfg Config, format string, indent bool) error {
	log := newLogger(io.Discard, cfg)
	acc, err := documentedRoutes(cfg, log, chi.NewRouter())
	if err != nil {
		return err
	}
	meta := cfg.Metadata()

	var out []byte
	switch format {
	case "json":
		out, err = acc.Finalize(meta)
		if err == nil && indent {
			var buf bytes.Buffer
			err = json.Indent(&buf, out, "", "  ")
			out = buf.Bytes()
		}
		if err == nil {
			out = append(out, '\n')
		}
	case "yaml", "yml":
		out, err = acc.FinalizeYAML(meta)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
