package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/monmaru/linearview"
	"github.com/monmaru/linearview/library/log"
	"github.com/monmaru/linearview/library/tracing"
	"github.com/monmaru/linearview/service"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the export API",
	Long: `Serve exposes POST /api/linear/export and POST /api/linear/handout.

Configuration comes from PORT, BUCKETNAME, GOOGLE_CLOUD_PROJECT, SLIDE_SELECTOR,
FETCH_TIMEOUT and TRACE_FRACTION. With a project set, logs go to Cloud Logging
and traces to Cloud Trace.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := linearview.ConfigFromEnv()
	if servePort != "" {
		cfg.Port = servePort
	}

	if cfg.ProjectID != "" {
		closeLog, err := log.Init(ctx, cfg.ProjectID, "linearview")
		if err != nil {
			return err
		}
		defer closeLog()

		flush, err := tracing.Init(cfg.ProjectID, cfg.TraceFraction)
		if err != nil {
			return err
		}
		defer flush()
	}

	var storage service.Storage
	if cfg.Bucket != "" {
		storage = service.NewStorage(cfg.Bucket)
	}

	handler, err := linearview.NewRouter(cfg, service.NewDeckService(nil, cfg.FetchTimeout), storage)
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: cfg.Addr(), Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf(shutdownCtx, "shutdown: %v", err)
		}
	}()

	log.Infof(ctx, "listening on %s", cfg.Addr())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
