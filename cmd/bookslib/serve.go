package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"bookslib/internal/httpapi"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(c *cli) *cobra.Command {
	var corsOrigins []string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON presentation surface",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("cors-origins") {
				c.cfg.CORSOrigins = corsOrigins
			}
			return runServe(cmd.Context(), c)
		},
	}
	cmd.Flags().StringVar(&c.opts.addr, "addr", "", "HTTP listen address (default :8080)")
	cmd.Flags().StringSliceVar(&corsOrigins, "cors-origins", nil, "Allowed CORS origins; CORS is off when empty")
	return cmd
}

func runServe(parent context.Context, c *cli) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, c.cfg, c.log, nil)
	if err != nil {
		return c.out.Error("Cannot start", err.Error(), nil)
	}
	defer a.Close()

	go a.binder.Run(ctx, a.provider)
	go func() {
		if err := a.provider.Watch(ctx); err != nil {
			c.log.Error().Err(err).Msg("key file watch stopped; identity changes need a restart")
		}
	}()

	httpapi.SetLogger(c.log.With().Str("component", "http").Logger())
	httpapi.SetRequestLogLevel(c.cfg.LogLevel)
	httpapi.SetMaxBodyBytes(c.cfg.MaxBodyBytes)
	httpapi.SetRateLimit(c.cfg.RateLimitRPS, c.cfg.RateLimitBurst)
	if !c.cfg.RateLimited() {
		c.log.Info().Float64("rate_limit_rps", c.cfg.RateLimitRPS).Msg("rate limiting disabled")
	}
	httpapi.SetCORSOptions(len(c.cfg.CORSOrigins) > 0, c.cfg.CORSOrigins,
		[]string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		[]string{"Content-Type", "X-Log-Level"})
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Addr:              c.cfg.Addr,
		Handler:           httpapi.NewMux(a.mgr),
		BaseContext:       httpapi.BaseContext,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		c.log.Info().Str("addr", c.cfg.Addr).Str("registry", c.cfg.RegistryAddress).Str("key_file", a.provider.Path()).Msg("bookslib listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return c.out.Error("Server error", err.Error(), nil)
		}
		return nil
	case <-ctx.Done():
	}

	// Graceful shutdown (Ctrl+C / SIGTERM)
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		c.log.Error().Err(err).Msg("graceful shutdown error")
	}
	if err := a.mgr.Drain(sctx); err != nil {
		c.log.Warn().Err(err).Msg("attempts still pending at exit")
	}
	return nil
}
