package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/scoutline/scoutline-api/internal/domain/athlete"
)

// completionService is the part of athlete.Service the CLI drives
type completionService interface {
	Completion(ctx context.Context, id uuid.UUID) (*athlete.CompletionView, error)
	RecomputeOne(ctx context.Context, id uuid.UUID, dryRun bool) athlete.RecomputeOutcome
	RecomputeAll(ctx context.Context, opts athlete.RecomputeOptions, fn func(athlete.RecomputeOutcome)) (int, error)
}

type serviceFactory func(ctx context.Context) (completionService, func(), error)

var errRecomputeFailed = errors.New("some athletes could not be recomputed")

func newRootCmd(open serviceFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "completion",
		Short:         "Inspect and recompute athlete profile completion",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newShowCmd(open), newRecomputeCmd(open))
	return root
}

func newShowCmd(open serviceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "show <athlete-id>",
		Short: "Print the live completion breakdown of one athlete as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid athlete id %q: %w", args[0], err)
			}

			svc, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			view, err := svc.Completion(cmd.Context(), id)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		},
	}
}

func newRecomputeCmd(open serviceFactory) *cobra.Command {
	var (
		athleteID string
		batch     int
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Recompute and store completion percentages",
		Long: `Recomputes completion for one athlete (--athlete) or for every athlete in
id order, batch by batch. With --dry-run nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var single uuid.UUID
			one := cmd.Flags().Changed("athlete")
			if one {
				id, err := uuid.Parse(athleteID)
				if err != nil {
					return fmt.Errorf("invalid athlete id %q: %w", athleteID, err)
				}
				single = id
			}

			svc, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			var processed, changed, failed int
			report := func(o athlete.RecomputeOutcome) {
				processed++
				switch {
				case o.Err != nil:
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s\terror: %v\n", o.AthleteID, o.Err)
				case o.Changed():
					changed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s -> %d\n", o.AthleteID, previous(o.Previous), o.Completion)
				}
			}

			if one {
				report(svc.RecomputeOne(cmd.Context(), single, dryRun))
			} else if _, err := svc.RecomputeAll(cmd.Context(), athlete.RecomputeOptions{Batch: batch, DryRun: dryRun}, report); err != nil {
				return err
			}

			suffix := ""
			if dryRun {
				suffix = " (dry run, nothing written)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "processed %d, changed %d, failed %d%s\n", processed, changed, failed, suffix)

			if failed > 0 {
				return errRecomputeFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&athleteID, "athlete", "", "recompute a single athlete by id")
	cmd.Flags().IntVar(&batch, "batch", 200, "athletes fetched per page")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute and report without writing")
	return cmd
}

func previous(p *int) string {
	if p == nil {
		return "none"
	}
	return fmt.Sprint(*p)
}
