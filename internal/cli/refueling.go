package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tair/fuel-control/internal/fuel"
	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/internal/fuel/usecase/command"
)

type transitionFunc func(svc *fuel.Service) func(context.Context, command.TransitionRefuelingCommand) (*domain.Refueling, error)

func refuelingCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refueling",
		Short: "Move refuelings through their lifecycle",
	}

	cmd.AddCommand(transitionCmd(load, "confirm", "Confirm a draft refueling", func(svc *fuel.Service) func(context.Context, command.TransitionRefuelingCommand) (*domain.Refueling, error) {
		return svc.Commands.Confirm.Handle
	}))
	cmd.AddCommand(transitionCmd(load, "cancel", "Cancel a confirmed refueling", func(svc *fuel.Service) func(context.Context, command.TransitionRefuelingCommand) (*domain.Refueling, error) {
		return svc.Commands.Cancel.Handle
	}))
	cmd.AddCommand(transitionCmd(load, "draft", "Reset a cancelled refueling to draft", func(svc *fuel.Service) func(context.Context, command.TransitionRefuelingCommand) (*domain.Refueling, error) {
		return svc.Commands.Reset.Handle
	}))
	return cmd
}

func transitionCmd(load Loader, use, short string, handle transitionFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [refueling-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "refueling")
			if err != nil {
				return err
			}
			operator, _ := cmd.Flags().GetString("operator")

			return withService(cmd, load, func(ctx context.Context, svc *fuel.Service) error {
				refueling, err := handle(svc)(ctx, command.TransitionRefuelingCommand{ID: id, Operator: operator})
				if err != nil {
					return fmt.Errorf("failed to %s refueling %d: %w", use, id, err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s Refueling %d is now %s\n", color.GreenString("✓"), refueling.ID, refueling.Status)
				if refueling.Reference != "" {
					fmt.Fprintf(out, "  Reference: %s\n", refueling.Reference)
				}
				fmt.Fprintf(out, "  Equipment: %s\n", refueling.Equipment)
				fmt.Fprintf(out, "  Liters: %s\n", refueling.Liters.StringFixed(2))
				return nil
			})
		},
	}
	cmd.Flags().String("operator", "fuelctl", "operator recorded in the logs")
	return cmd
}
