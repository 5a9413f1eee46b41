package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/okian/souk/internal/app"
	"github.com/okian/souk/internal/config"
	"github.com/okian/souk/pkg/logger"
)

// Metrics server timeout constants.
const (
	metricsReadTimeout       = 10 * time.Second
	metricsWriteTimeout      = 10 * time.Second
	metricsReadHeaderTimeout = 5 * time.Second
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Input       string
	Output      string
	MetricsAddr string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process a command stream",
		Long: `Read marketplace commands from the input stream, execute them against an
in-memory engine, and write one response line per command to the output.

Example:
  souk run < commands.txt > responses.txt
  souk run -i commands.txt -o responses.txt --metrics-addr :9090`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "command stream path (\"-\" for stdin)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "response path (\"-\" for stdout)")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "Prometheus listen address (empty disables)")

	return cmd
}

func runEngine(cmd *cobra.Command, opts *RunOptions) error {
	if err := logger.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("input") {
		cfg.Input = opts.Input
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = opts.Output
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.MetricsAddr = opts.MetricsAddr
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}
	log := logger.Get()

	in, closeIn, err := openInput(cfg.Input)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	if cfg.MetricsAddr != "" {
		startMetricsServer(ctx, cfg.MetricsAddr, log)
	}

	engine := app.New(
		app.WithLogger(log),
		app.WithCustomerCapacity(cfg.CustomerCapacity),
		app.WithFreelancerCapacity(cfg.FreelancerCapacity),
		app.WithEmploymentCapacity(cfg.EmploymentCapacity),
		app.WithBlacklistCapacity(cfg.BlacklistCapacity),
	)

	runner := app.NewRunner(engine, in, out, app.WithRunnerLogger(log))

	log.Info(ctx, "engine started",
		logger.String("input", cfg.Input),
		logger.String("output", cfg.Output),
	)
	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info(ctx, "engine finished")
	return nil
}

// startMetricsServer exposes /metrics on addr until ctx is cancelled.
func startMetricsServer(ctx context.Context, addr string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       metricsReadTimeout,
		WriteTimeout:      metricsWriteTimeout,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "metrics server listening", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "metrics server failed", logger.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
