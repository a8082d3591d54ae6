package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/segyhp/yunta/internal/domain"
	"github.com/segyhp/yunta/internal/export"
	"github.com/segyhp/yunta/internal/service"
)

// KardexOptions holds flags for the kardex command.
type KardexOptions struct {
	*RootOptions
	Junta       string
	Participant string
	Export      string // "csv" | "pdf" | "json"
	Output      string
}

// NewKardexCommand creates the kardex command.
func NewKardexCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &KardexOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "kardex",
		Short: "Export a participant's day-by-day statement",
		Long: `Export the kardex of one participant as CSV, PDF or JSON.

Examples:
  juntactl kardex --participant 5b1c... > ana.csv
  juntactl kardex --junta 7d3b... --participant 5b1c... --export pdf -o ana.pdf`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKardex(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Junta, "junta", "", "junta id (defaults to the active junta)")
	cmd.Flags().StringVar(&opts.Participant, "participant", "", "participant id (required)")
	_ = cmd.MarkFlagRequired("participant")
	cmd.Flags().StringVar(&opts.Export, "export", "csv", "file type (csv|pdf|json)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

func runKardex(opts *KardexOptions, cmd *cobra.Command) error {
	var render func(io.Writer, *domain.Kardex) error
	switch opts.Export {
	case "csv":
		render = export.KardexCSV
	case "pdf":
		render = export.KardexPDF
	case "json":
		render = func(w io.Writer, k *domain.Kardex) error { return writeJSON(w, k) }
	default:
		return WrapExitError(ExitCommandError, fmt.Sprintf("unsupported export %q", opts.Export), nil)
	}

	shareID, err := parseID("participant", opts.Participant)
	if err != nil {
		return err
	}

	return opts.withService(cmd, func(ctx context.Context, svc service.Service) error {
		juntaID, err := resolveJunta(ctx, svc, opts.Junta)
		if err != nil {
			return err
		}

		kardex, err := svc.GetKardex(ctx, juntaID, shareID)
		if err != nil {
			return err
		}

		if opts.Output == "" || opts.Output == "-" {
			return render(cmd.OutOrStdout(), kardex)
		}

		f, err := os.Create(opts.Output)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create output file", err)
		}
		if err := render(f, kardex); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d days)\n", opts.Output, len(kardex.Days))
		return nil
	})
}
