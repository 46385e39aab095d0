package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/satindergrewal/salient/internal/demo"
	"github.com/satindergrewal/salient/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site and the voice demo",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	profile, err := cfg.Profile()
	if err != nil {
		return err
	}

	demos := demo.NewManager(demo.Config{
		AudioPath:     cfg.DemoAudio,
		Profile:       profile,
		Seed:          cfg.WaveformSeed,
		FrameInterval: cfg.FrameInterval,
		SessionTTL:    cfg.SessionTTL,
		MaxSessions:   cfg.MaxSessions,
	}, logger.Named("demo"))

	site, err := web.NewServer(web.Options{
		Demos:         demos,
		Logger:        logger.Named("web"),
		FormPerMinute: cfg.FormRatePerMinute,
		FormBurst:     cfg.FormBurst,
		DemoPerMinute: cfg.DemoRatePerMinute,
		DemoBurst:     cfg.DemoBurst,
	})
	if err != nil {
		demos.Close()
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           site,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return demos.Run(ctx) })
	g.Go(func() error { return site.Run(ctx) })
	g.Go(func() error {
		logger.Info("salient live",
			zap.String("addr", server.Addr),
			zap.String("profile", profile.Name),
			zap.String("demo_audio", cfg.DemoAudio),
		)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		// SSE and audio streams never finish on their own.
		demos.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown timed out", zap.Error(err))
			return server.Close()
		}
		return nil
	})
	return g.Wait()
}
