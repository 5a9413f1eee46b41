package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/souk/internal/workload"
	"github.com/okian/souk/pkg/logger"
)

// GenOptions holds flags for the gen command.
type GenOptions struct {
	*RootOptions
	Seed        int64
	Customers   int
	Freelancers int
	Commands    int
	Output      string
}

// NewGenCommand creates the gen command.
func NewGenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a deterministic command stream",
		Long: `Generate a reproducible marketplace workload: customer and freelancer
registrations followed by a weighted mix of job, rating, and query commands.

Example:
  souk gen --seed 42 --commands 100000 -o workload.txt`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(opts)
		},
	}

	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "random seed")
	cmd.Flags().IntVar(&opts.Customers, "customers", workload.DefaultCustomers, "customers to register")
	cmd.Flags().IntVar(&opts.Freelancers, "freelancers", workload.DefaultFreelancers, "freelancers to register")
	cmd.Flags().IntVar(&opts.Commands, "commands", workload.DefaultCommands, "mixed commands to emit")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "-", "output path (\"-\" for stdout)")

	return cmd
}

func generate(opts *GenOptions) error {
	if err := logger.Init(); err != nil {
		return err
	}
	if opts.Verbose {
		if err := logger.SetLevelString("debug"); err != nil {
			return err
		}
	}

	var out io.Writer = os.Stdout
	if opts.Output != "-" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	gen := workload.New(workload.Config{
		Seed:        opts.Seed,
		Customers:   opts.Customers,
		Freelancers: opts.Freelancers,
		Commands:    opts.Commands,
	})
	return gen.WriteTo(context.Background(), out)
}
