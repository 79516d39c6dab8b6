package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/KirkDiggler/age-toolbox/internal/errors"
)

var (
	grpcAddr      string
	healthService string
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Query the gRPC health service",
	Long: `Ask the server's grpc.health.v1 service whether it is serving. Exits with
an error unless the status is SERVING.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func init() {
	healthCmd.Flags().StringVar(&grpcAddr, "grpc", "localhost:50051", "gRPC health server address")
	healthCmd.Flags().StringVar(&healthService, "service", "", "Service name to check; empty for the whole server")
}

// checkHealth returns the serving status reported for service. gRPC
// failures come back as *errors.Error.
func checkHealth(ctx context.Context, addr, service string) (grpc_health_v1.HealthCheckResponse_ServingStatus, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN, errors.FromGRPCError(err)
	}
	return resp.GetStatus(), nil
}

func runHealth(_ *cobra.Command, _ []string) error {
	ctx, cancel := withTimeout()
	defer cancel()

	status, err := checkHealth(ctx, grpcAddr, healthService)
	if err != nil {
		return err
	}

	if status != grpc_health_v1.HealthCheckResponse_SERVING {
		fmt.Println(failure.Render(status.String()))
		return errors.Unavailable("server is " + status.String())
	}

	fmt.Println(success.Render(status.String()))
	return nil
}
