package main

import (
	"github.com/Gobd/docer/swaggerui"
	"github.com/spf13/cobra"
)

func newFetchUICmd(opts *rootOptions) *cobra.Command {
	var dir, url string
	cmd := &cobra.Command{
		Use:   "fetch-ui",
		Short: "Download the Swagger UI bundle",
		Long: `Download the Swagger UI release archive, unpack its dist directory into
<dir>/docs and point its index.html at /docs/docs.json.

Nothing is downloaded when <dir>/docs/swagger-ui.js already exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dir") {
				cfg.UI.Dir = dir
			}
			if cmd.Flags().Changed("url") {
				cfg.UI.URL = url
			}
			return swaggerui.Ensure(cmd.Context(), swaggerui.FetchConfig{
				Dir:      cfg.UI.Dir,
				URL:      cfg.UI.URL,
				Progress: swaggerui.NewBarProgress(cmd.ErrOrStderr()),
				Logger:   newLogger(cmd.ErrOrStderr(), cfg),
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", swaggerui.DefaultDir, "directory to install into")
	cmd.Flags().StringVar(&url, "url", swaggerui.DefaultArchiveURL, "release archive URL")
	return cmd
}
