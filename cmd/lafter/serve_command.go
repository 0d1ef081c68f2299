package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lafter/internal/api"
	"lafter/internal/queue"
	"lafter/internal/telemetry"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the classification HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			cls, err := ctx.loadClassifier()
			if err != nil {
				return err
			}
			adapter, err := ctx.loadLLM()
			if err != nil {
				return err
			}
			if !adapter.Enabled() {
				logger.Warn("llm not configured; /api/v1/classify/llm will return 503")
			}

			return ctx.withStore(func(store *queue.Store) error {
				handler, err := api.NewHandler(cls,
					api.WithLLM(adapter),
					api.WithQueue(store),
					api.WithMetrics(telemetry.NewProvider()),
					api.WithLogger(logger),
					api.WithMaxBatch(cfg.API.MaxBatch),
				)
				if err != nil {
					return err
				}
				addr := cfg.API.Bind
				if bind != "" {
					addr = bind
				}
				if err := api.NewServer(addr, handler, logger).Run(signalCtx); err != nil {
					return fmt.Errorf("api server: %w", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Override api.bind")
	return cmd
}
