// Package cli implements juntactl, the operator command line for the junta engine.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/segyhp/yunta/internal/service"
)

// Opener builds the service a command talks to. The returned func releases it.
type Opener func(ctx context.Context) (service.Service, func() error, error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format string // "json" | "text"

	open Opener
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the juntactl root command.
func NewRootCommand(open Opener) *cobra.Command {
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:   "juntactl",
		Short: "juntactl - operate the junta ledger",
		Long:  "Close and reopen collection days, archive juntas and export participant kardex statements.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewKardexCommand(opts))
	cmd.AddCommand(NewArchiveCommand(opts))
	cmd.AddCommand(NewArchivesCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewCloseDayCommand(opts))
	cmd.AddCommand(NewReopenDayCommand(opts))
	cmd.AddCommand(NewAutoCloseCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// withService opens the service, runs fn and releases it
func (o *RootOptions) withService(cmd *cobra.Command, fn func(ctx context.Context, svc service.Service) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, release, err := o.open(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open junta store", err)
	}
	defer func() {
		if release != nil {
			_ = release()
		}
	}()

	return fn(ctx, svc)
}
