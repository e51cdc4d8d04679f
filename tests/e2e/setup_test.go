package e2e

import (
	"context"
	"net"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/light-bringer/pricecomp-service/internal/config"
	"github.com/light-bringer/pricecomp-service/internal/observability"
	"github.com/light-bringer/pricecomp-service/internal/services"
	"github.com/light-bringer/pricecomp-service/internal/transport/grpc/query"
	"github.com/light-bringer/pricecomp-service/tests/testutil"
)

// Services holds a fully wired service for E2E tests.
type Services struct {
	Options    *services.ServiceOptions
	HTTP       *httptest.Server
	GRPC       *query.Client
	FeedServer *httptest.Server
	FeedHits   *atomic.Int64
}

// setupTest wires the service against a feed served over HTTP, exactly as
// the server binary does, with gRPC on an in-memory listener.
func setupTest(t *testing.T, feed []byte, mutate ...func(*config.Config)) *Services {
	t.Helper()

	feedServer, hits := testutil.ServeFeed(t, feed)

	cfg := config.DefaultConfig()
	cfg.Feed.Location = feedServer.URL + "/netaporter_gb.json"
	for _, m := range mutate {
		m(cfg)
	}
	require.NoError(t, cfg.Validate())

	opts, err := services.NewServiceOptions(ctx(), cfg, observability.NopLogger())
	require.NoError(t, err)

	httpServer := httptest.NewServer(opts.HTTPHandler)
	t.Cleanup(httpServer.Close)

	lis := bufconn.Listen(1 << 20)
	grpcServer := grpc.NewServer()
	query.RegisterQueryServiceServer(grpcServer, opts.QueryHandler)
	go func() { _ = grpcServer.Serve(lis) }()
	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &Services{
		Options:    opts,
		HTTP:       httpServer,
		GRPC:       query.NewClient(conn),
		FeedServer: feedServer,
		FeedHits:   hits,
	}
}

// ctx returns a context for testing.
func ctx() context.Context {
	return context.Background()
}
