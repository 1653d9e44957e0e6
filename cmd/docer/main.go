// Command docer runs the example API with its Swagger documentation, prints
// the generated document and installs the Swagger UI bundle.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

// load reads the config file and applies flag overrides.
func (o *rootOptions) load() (Config, error) {
	cfg, err := LoadConfig(o.configPath)
	if err != nil {
		return cfg, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
		if _, err := cfg.Level(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "docer",
		Short: "Typed routes with generated Swagger documentation",
		Long: `docer serves an example API whose routes are documented as they are
registered, and the Swagger UI for that document.

Commands:
- serve: run the example API with docs under /docs/
- print: write the generated Swagger 2.0 document to stdout
- fetch-ui: download the Swagger UI release bundle for offline serving`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "docer.yaml", "path to the YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newServeCmd(opts), newPrintCmd(opts), newFetchUICmd(opts))
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
