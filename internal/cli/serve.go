package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/icnaming/icnaming/internal/di"
	icgrpc "github.com/icnaming/icnaming/internal/grpc"
	"github.com/icnaming/icnaming/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the icnamingd node: gRPC transport plus the heartbeat reconciliation loop",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.Default("serve")

	container := di.New()
	provider := di.NewProvider(container, cfg)
	if err := provider.RegisterAll(); err != nil {
		return fmt.Errorf("serve: register services: %w", err)
	}

	reg, err := provider.GetRegistrar()
	if err != nil {
		return fmt.Errorf("serve: build registrar: %w", err)
	}

	grpcServer, err := icgrpc.NewServer(&icgrpc.ServerConfig{
		Address:        cfg.GRPCAddr,
		MaxRecvMsgSize: 4 * 1024 * 1024,
		MaxSendMsgSize: 4 * 1024 * 1024,
	}, reg)
	if err != nil {
		return fmt.Errorf("serve: build grpc server: %w", err)
	}
	if err := grpcServer.StartAsync(); err != nil {
		return fmt.Errorf("serve: start grpc server: %w", err)
	}
	log.Info("listening on %s", grpcServer.Address())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := cfg.Timing.HeartbeatInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("heartbeat loop started, interval=%s", interval)
	for {
		select {
		case <-ticker.C:
			if err := reg.Heartbeat(); err != nil {
				log.Error("heartbeat: %v", err)
				continue
			}
			if err := provider.SaveAll(ctx); err != nil {
				log.Error("persist: %v", err)
			}
		case <-ctx.Done():
			log.Info("shutting down")
			grpcServer.Stop()
			if err := provider.SaveAll(context.Background()); err != nil {
				log.Error("final persist: %v", err)
			}
			return provider.Close()
		}
	}
}
