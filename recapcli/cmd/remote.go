package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	grpcapi "riftrewind/api/grpc"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type remoteOptions struct {
	addr    string
	timeout time.Duration
	asJSON  bool
}

func newRemoteCmd() *cobra.Command {
	opts := &remoteOptions{}

	remoteCmd := &cobra.Command{
		Use:   "remote <region> <gameName> <gameTag>",
		Short: "Request a recap from a running API",
		Long: `Request the recap of a Riot ID over gRPC. The API builds it when it
doesn't exist yet, which can take a few minutes for a full match history.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := grpc.NewClient(opts.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
			if err != nil {
				return fmt.Errorf("connect to %s: %w", opts.addr, err)
			}
			defer conn.Close()

			return runRemote(cmd.Context(), cmd.OutOrStdout(), grpcapi.NewRecapGRPCClient(conn), args, opts)
		},
	}

	flags := remoteCmd.Flags()
	flags.StringVar(&opts.addr, "addr", "localhost:50051", "address of the gRPC API")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Minute, "how long to wait for the recap")
	flags.BoolVar(&opts.asJSON, "json", false, "print the recap as JSON")

	return remoteCmd
}

func runRemote(ctx context.Context, out io.Writer, client grpcapi.RecapGRPCClient, args []string, opts *remoteOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	recap, err := client.GetRecap(ctx, args[0], args[1], args[2])
	if err != nil {
		return err
	}

	if opts.asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(recap)
	}

	fmt.Fprintf(out, "\n=== Recap of %s#%s (%s) ===\n", recap.GameName, recap.TagLine, recap.Region)
	fmt.Fprintf(out, "  Generated at  : %s\n", recap.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "  Skipped       : %d\n", recap.SkippedMatches)
	if recap.Summary == nil {
		return nil
	}
	return printSummary(out, recap.Summary)
}
