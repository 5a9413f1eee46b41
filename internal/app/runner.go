package app

import (
	"context"
	"errors"
	"io"

	"github.com/okian/souk/internal/adapters/stream"
	"github.com/okian/souk/pkg/logger"
	"github.com/okian/souk/pkg/metrics"
)

// Runner drives an Engine from a whitespace-delimited command stream and
// writes one response line per successful command.
type Runner struct {
	engine *Engine
	in     *stream.TokenReader
	out    *stream.LineWriter
	log    logger.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerLogger sets the logger used by the runner.
func WithRunnerLogger(l logger.Logger) RunnerOption {
	return func(r *Runner) {
		r.log = l
	}
}

// NewRunner wires an engine to its input and output streams.
func NewRunner(engine *Engine, in io.Reader, out io.Writer, opts ...RunnerOption) *Runner {
	r := &Runner{
		engine: engine,
		in:     stream.NewTokenReader(in),
		out:    stream.NewLineWriter(out),
		log:    logger.Get(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run consumes commands until the input is exhausted or ctx is cancelled.
// A command whose arguments are cut off by end of input produces no output.
func (r *Runner) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			if err := r.out.Flush(); err != nil {
				return err
			}
			return ctx.Err()
		default:
		}

		op, err := r.in.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		arity, known := Arity(op)
		if !known {
			metrics.RecordUnknownCommand()
			if err := r.out.WriteLine("Unknown command: " + op); err != nil {
				return err
			}
			continue
		}

		args := make([]string, 0, arity)
		truncated := false
		for i := 0; i < arity; i++ {
			tok, err := r.in.Next()
			if errors.Is(err, io.EOF) {
				truncated = true
				break
			}
			if err != nil {
				return err
			}
			args = append(args, tok)
		}
		if truncated {
			r.log.Warn(ctx, "input ended mid-command", logger.String("operation", op))
			break
		}

		response, err := r.engine.Execute(op, args)
		if err != nil {
			// Command-level fault: the command is abandoned with no
			// output and processing continues.
			r.log.Debug(ctx, "command fault",
				logger.String("operation", op),
				logger.Error(err),
			)
			continue
		}
		if err := r.out.WriteLine(response); err != nil {
			return err
		}
	}

	return r.out.Flush()
}
