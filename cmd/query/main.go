package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/domain"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/engine"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/repo"
	"github.com/light-bringer/pricecomp-service/internal/metrics"
	"github.com/light-bringer/pricecomp-service/internal/observability"
	"github.com/light-bringer/pricecomp-service/internal/pkg/clock"
	"github.com/light-bringer/pricecomp-service/internal/transport/grpc/query"
)

var (
	feed      string
	queryType string
	filters   []string
	remote    string
	strict    bool
	timeout   time.Duration
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "query",
	Short: "Run one price comparison query and print the JSON reply",
	Long: `Runs a single query either locally, building the product table from --feed,
or against a running server with --remote.

Filters are "operand1,operator,operand2", for example:

  query --type expensive_list --filter "brand.name,==,Gucci" --filter "discount,>,20"`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildRequest(queryType, filters)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		var out []byte
		if remote != "" {
			out, err = runRemote(ctx, req)
		} else {
			out, err = runLocal(ctx, req)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	_ = godotenv.Load()

	rootCmd.Flags().StringVar(&feed, "feed", os.Getenv("FEED_LOCATION"), "feed path or http(s) URL for local queries")
	rootCmd.Flags().StringVarP(&queryType, "type", "t", "", "query type, e.g. discounted_products_list")
	rootCmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, `filter "operand1,operator,operand2" (repeatable)`)
	rootCmd.Flags().StringVar(&remote, "remote", "", "gRPC address of a running server; queries locally when empty")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "fail on records that cannot be derived")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall timeout")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level")
	_ = rootCmd.MarkFlagRequired("type")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildRequest parses the --filter flags. Operands may not contain commas
// except in operand2, which takes the rest of the value.
func buildRequest(queryType string, raw []string) (*engine.Request, error) {
	req := &engine.Request{QueryType: queryType}
	for i, f := range raw {
		parts := strings.SplitN(f, ",", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("filter %d %q: %w", i, f, domain.ErrMalformedPredicate)
		}
		req.Filters = append(req.Filters, domain.NewFilterPredicate(parts[0], parts[1], parts[2]))
	}
	return req, nil
}

func runLocal(ctx context.Context, req *engine.Request) ([]byte, error) {
	if feed == "" {
		return nil, errors.New("--feed (or FEED_LOCATION) is required without --remote")
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       logLevel,
		Format:      "console",
		Output:      os.Stderr,
		ServiceName: "pricecomp-query",
	})
	clk := clock.NewRealClock()
	reg := metrics.NewRegistry()
	table := repo.NewProductTable(repo.NewFeedSource(feed, timeout), clk, logger, reg, repo.TableOptions{Strict: strict})

	reply, err := engine.New(table, clk, logger, reg).Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	return json.Marshal(reply)
}

func runRemote(ctx context.Context, req *engine.Request) ([]byte, error) {
	conn, err := grpc.NewClient(remote, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", remote, err)
	}
	defer conn.Close()

	return query.NewClient(conn).Query(ctx, req)
}
