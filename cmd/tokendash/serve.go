package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hashgraph-online/token-dashboard-go/pkg/dashboard"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client, err := a.ledgerClient()
			if err != nil {
				return err
			}
			store, err := a.credentialStore(ctx)
			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			metrics := dashboard.NewMetrics(registry)

			d, err := dashboard.New(dashboard.Config{
				Ledger:  client,
				Store:   store,
				Logger:  &a.log,
				Metrics: metrics,
			})
			if err != nil {
				return err
			}
			server, err := dashboard.NewServer(dashboard.ServerConfig{
				Dashboard: d,
				Logger:    &a.log,
				Metrics:   metrics,
				Gatherer:  registry,
			})
			if err != nil {
				return err
			}

			group, groupCtx := errgroup.WithContext(ctx)
			group.Go(func() error {
				return server.Start(a.options.listen)
			})
			group.Go(func() error {
				result, err := d.Start(groupCtx)
				if err != nil {
					return err
				}
				a.log.Info().Str("status", result.Status).Str("network", client.Network()).Msg("dashboard ready")
				return nil
			})
			group.Go(func() error {
				<-groupCtx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			})
			return group.Wait()
		},
	}
}
