package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/segyhp/yunta/internal/domain"
	"github.com/segyhp/yunta/internal/service"
	"github.com/segyhp/yunta/pkg/utils"
)

// DayOptions holds flags for the close-day and reopen-day commands.
type DayOptions struct {
	*RootOptions
	Junta string
	Date  string
}

type dayAction func(ctx context.Context, svc service.Service, juntaID uuid.UUID, date time.Time) (*domain.Turn, error)

// NewCloseDayCommand creates the close-day command.
func NewCloseDayCommand(rootOpts *RootOptions) *cobra.Command {
	return newDayCommand(rootOpts, "close-day", "Close a collection day", "closed",
		func(ctx context.Context, svc service.Service, juntaID uuid.UUID, date time.Time) (*domain.Turn, error) {
			return svc.CloseDay(ctx, juntaID, date)
		})
}

// NewReopenDayCommand creates the reopen-day command.
func NewReopenDayCommand(rootOpts *RootOptions) *cobra.Command {
	return newDayCommand(rootOpts, "reopen-day", "Reopen a closed collection day", "reopened",
		func(ctx context.Context, svc service.Service, juntaID uuid.UUID, date time.Time) (*domain.Turn, error) {
			return svc.ReopenDay(ctx, juntaID, date)
		})
}

func newDayCommand(rootOpts *RootOptions, use, short, verb string, action dayAction) *cobra.Command {
	opts := &DayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc service.Service) error {
				juntaID, err := resolveJunta(ctx, svc, opts.Junta)
				if err != nil {
					return err
				}

				date := svc.Today()
				if opts.Date != "" {
					if date, err = parseDay(opts.Date); err != nil {
						return err
					}
				}

				turn, err := action(ctx, svc, juntaID, date)
				if err != nil {
					return err
				}

				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), turn)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Day %s %s (turn %d, %s)\n",
					utils.FormatDate(turn.Date), verb, turn.TurnNumber, turn.Status)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.Junta, "junta", "", "junta id (defaults to the active junta)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "day as YYYY-MM-DD (defaults to today)")

	return cmd
}

// NewAutoCloseCommand creates the auto-close command, the one-shot form of the scheduler job.
func NewAutoCloseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "auto-close",
		Short:         "Close every elapsed day of the active junta past the grace period",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withService(cmd, func(ctx context.Context, svc service.Service) error {
				closed, err := svc.AutoCloseElapsedDays(ctx)
				if err != nil {
					return err
				}

				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), map[string]int{"closed": closed})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Closed %d day(s)\n", closed)
				return nil
			})
		},
	}
}

// resolveJunta parses the --junta flag, falling back to the active junta
func resolveJunta(ctx context.Context, svc service.Service, flag string) (uuid.UUID, error) {
	if flag != "" {
		return parseID("junta", flag)
	}

	state, err := svc.GetActiveJunta(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return state.Junta.ID, nil
}
