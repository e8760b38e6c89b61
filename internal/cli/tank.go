package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tair/fuel-control/internal/fuel"
	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/internal/fuel/usecase/command"
	"github.com/tair/fuel-control/internal/fuel/usecase/query"
)

// fill levels below which the list highlights a tank
var (
	lowFill    = decimal.NewFromInt(15)
	mediumFill = decimal.NewFromInt(35)
)

func tankCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tank",
		Short: "Manage fuel tanks",
	}
	cmd.AddCommand(tankListCmd(load))
	cmd.AddCommand(tankRecomputeCmd(load))
	return cmd
}

func tankListCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tanks with their stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")

			return withService(cmd, load, func(ctx context.Context, svc *fuel.Service) error {
				q := query.ListTanksQuery{Limit: 100}
				if !all {
					active := true
					q.Active = &active
				}

				tanks, err := svc.Queries.ListTanks.Handle(ctx, q)
				if err != nil {
					return fmt.Errorf("failed to list tanks: %w", err)
				}

				out := cmd.OutOrStdout()
				if len(tanks) == 0 {
					fmt.Fprintln(out, "No tanks found.")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tSTOCK (L)\tCAPACITY (L)\tFILL\tACTIVE")
				fmt.Fprintln(w, "--\t----\t---------\t------------\t----\t------")
				for _, t := range tanks {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
						t.ID,
						t.Name,
						t.CurrentStock.StringFixed(2),
						t.Capacity.StringFixed(2),
						fillLabel(t),
						activeLabel(t.Active),
					)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().Bool("all", false, "include archived tanks")
	return cmd
}

func tankRecomputeCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recompute [tank-id]",
		Short: "Resynchronize stored stock with receipts and confirmed refuelings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")

			var recompute command.RecomputeTankCommand
			switch {
			case all && len(args) == 0:
				recompute.All = true
			case !all && len(args) == 1:
				id, err := parseID(args[0], "tank")
				if err != nil {
					return err
				}
				recompute.ID = id
			default:
				return fmt.Errorf("pass either a tank id or --all")
			}

			return withService(cmd, load, func(ctx context.Context, svc *fuel.Service) error {
				tanks, err := svc.Commands.RecomputeTank.Handle(ctx, recompute)
				if err != nil {
					return fmt.Errorf("failed to recompute: %w", err)
				}

				out := cmd.OutOrStdout()
				for _, t := range tanks {
					fmt.Fprintf(out, "%s Tank %d (%s): %sL of %sL\n",
						color.GreenString("✓"), t.ID, t.Name, t.CurrentStock.StringFixed(2), t.Capacity.StringFixed(2))
				}
				return nil
			})
		},
	}
	cmd.Flags().Bool("all", false, "recompute every tank")
	return cmd
}

func fillLabel(t domain.Tank) string {
	label := t.FillPercentage.StringFixed(2) + "%"
	switch {
	case t.FillPercentage.LessThan(lowFill):
		return color.RedString(label)
	case t.FillPercentage.LessThan(mediumFill):
		return color.YellowString(label)
	default:
		return label
	}
}

func activeLabel(active bool) string {
	if active {
		return "yes"
	}
	return color.New(color.Faint).Sprint("archived")
}
