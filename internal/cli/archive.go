package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/segyhp/yunta/internal/domain"
	"github.com/segyhp/yunta/internal/service"
)

// ArchiveOptions holds flags for the archive command.
type ArchiveOptions struct {
	*RootOptions
	Junta  string
	Reason string
}

// NewArchiveCommand creates the archive command.
func NewArchiveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ArchiveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive a junta and freeze its final report",
		Long: `Archive an ACTIVE junta. The final report is computed once and stored;
the junta can no longer be modified afterwards.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc service.Service) error {
				juntaID, err := resolveJunta(ctx, svc, opts.Junta)
				if err != nil {
					return err
				}

				var reason *string
				if opts.Reason != "" {
					reason = &opts.Reason
				}

				report, err := svc.ArchiveJunta(ctx, juntaID, reason)
				if err != nil {
					return err
				}
				return printReport(cmd.OutOrStdout(), opts.Format, report)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Junta, "junta", "", "junta id (defaults to the active junta)")
	cmd.Flags().StringVar(&opts.Reason, "reason", "", "why the junta is archived")

	return cmd
}

// NewArchivesCommand creates the archives command.
func NewArchivesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "archives",
		Short:         "List archived, completed and cancelled juntas",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withService(cmd, func(ctx context.Context, svc service.Service) error {
				rows, err := svc.ListArchivedJuntas(ctx)
				if err != nil {
					return err
				}

				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), rows)
				}
				return printArchives(cmd.OutOrStdout(), rows)
			})
		},
	}
}

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Junta string
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "report",
		Short:         "Show the stored final report of an archived junta",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			juntaID, err := parseID("junta", opts.Junta)
			if err != nil {
				return err
			}

			return opts.withService(cmd, func(ctx context.Context, svc service.Service) error {
				report, err := svc.GetArchiveReport(ctx, juntaID)
				if err != nil {
					return err
				}
				return printReport(cmd.OutOrStdout(), opts.Format, report)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Junta, "junta", "", "junta id (required)")
	_ = cmd.MarkFlagRequired("junta")

	return cmd
}

func printReport(w io.Writer, format string, report *domain.FinalReport) error {
	if format == "json" {
		return writeJSON(w, report)
	}

	stats := report.GlobalStats
	fmt.Fprintf(w, "%s (%s to %s, %d days)\n", report.JuntaName, report.Period.Start, report.Period.End, report.Period.TotalDays)
	fmt.Fprintf(w, "Collected %s of %s, debt %s, compliance %s%%\n",
		stats.TotalCollected.StringFixed(2), stats.TotalExpected.StringFixed(2),
		stats.TotalDebt.StringFixed(2), stats.GlobalCompliance.StringFixed(2))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PARTICIPANT\tPAID\tEXPECTED\tDAYS\tCOMPLIANCE\tDEBT")
	for _, p := range report.Participants {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s%%\t%s\n",
			p.Name, p.TotalPaid.StringFixed(2), p.TotalExpected.StringFixed(2),
			p.CompleteDays, p.ComplianceRate.StringFixed(2), p.FinalDebt.StringFixed(2))
	}
	return tw.Flush()
}

func printArchives(w io.Writer, rows []*domain.ArchivedJuntaSummary) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No archived juntas")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tSTART\tEND\tPARTICIPANTS\tCOLLECTED\tCOMPLIANCE")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s%%\n",
			row.ID, row.Name, row.Status, row.StartDate, row.EndDate,
			row.ParticipantCount, row.TotalCollected.StringFixed(2), row.ComplianceRate.StringFixed(2))
	}
	return tw.Flush()
}
