package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Gobd/docer"
	"github.com/Gobd/docer/swagger"
	"github.com/Gobd/docer/swaggerui"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the example API and its documentation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			h, err := buildHandler(ctx, cfg, log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return serve(ctx, cfg, log, h)
		},
	}
}

// documentedRoutes registers the example routes on r under cfg.Prefix and
// returns the filled accumulator.
func documentedRoutes(cfg Config, log *slog.Logger, r chi.Router) (*swagger.Accumulator, error) {
	acc := swagger.New()
	api := r
	if cfg.Prefix != "" {
		sub := chi.NewRouter()
		r.Mount(cfg.Prefix, sub)
		api = sub
	}
	rt := docer.NewRouter(docer.Chi(api), acc, cfg.Prefix, docer.WithLogger(log))
	if err := registerRoutes(rt); err != nil {
		return nil, err
	}
	return acc, nil
}

// buildHandler assembles the API and the docs. Every route is registered
// before the document is finalized.
func buildHandler(ctx context.Context, cfg Config, log *slog.Logger, progress io.Writer) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(requestID(log))

	acc, err := documentedRoutes(cfg, log, r)
	if err != nil {
		return nil, err
	}
	meta := cfg.Metadata()

	if cfg.UI.Fetch {
		err := swaggerui.Ensure(ctx, swaggerui.FetchConfig{
			Dir:      cfg.UI.Dir,
			URL:      cfg.UI.URL,
			Progress: swaggerui.NewBarProgress(progress),
			Logger:   log,
		})
		if err != nil {
			return nil, err
		}
		if err := acc.WriteFile(filepath.Join(swaggerui.DocsDir(cfg.UI.Dir), "docs.json"), meta); err != nil {
			return nil, err
		}
		r.Handle("/docs/*", swaggerui.Static(cfg.UI.Dir))
		log.Info("serving swagger ui from disk", "dir", cfg.UI.Dir)
		return r, nil
	}

	docJSON, err := acc.Finalize(meta)
	if err != nil {
		return nil, err
	}
	docYAML, err := acc.FinalizeYAML(meta)
	if err != nil {
		return nil, err
	}
	ui, err := swaggerui.Handler(cfg.DocsPath, docJSON, swaggerui.WithYAML(docYAML))
	if err != nil {
		return nil, err
	}
	r.Handle(cfg.DocsPath+"*", ui)
	return r, nil
}

func serve(ctx context.Context, cfg Config, log *slog.Logger, h http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "addr", cfg.Listen, "docs", cfg.DocsPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
