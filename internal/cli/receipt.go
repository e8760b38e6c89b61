package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tair/fuel-control/internal/fuel"
	"github.com/tair/fuel-control/internal/fuel/usecase/query"
)

func receiptCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipt",
		Short: "Inspect fuel receipts",
	}
	cmd.AddCommand(receiptCountCmd(load))
	return cmd
}

func receiptCountCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count the receipts created for a receiving document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			document, _ := cmd.Flags().GetString("document")
			if document == "" {
				return fmt.Errorf("--document flag is required")
			}

			return withService(cmd, load, func(ctx context.Context, svc *fuel.Service) error {
				count, err := svc.Queries.CountDocumentReceipts.Handle(ctx, query.CountDocumentReceiptsQuery{Document: document})
				if err != nil {
					return fmt.Errorf("failed to count receipts: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d receipt(s)\n", document, count)
				return nil
			})
		},
	}
	cmd.Flags().String("document", "", "receiving document name")
	return cmd
}
