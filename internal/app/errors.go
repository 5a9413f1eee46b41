package app

import "errors"

// Sentinel kinds for the command processing loop.
var (
	// errCommandFault marks a command whose execution failed in a way that
	// produces no output line; the run continues with the next command.
	errCommandFault = errors.New("command fault")

	// errUnknownOperation is returned by dispatch for unrecognized
	// operations; the runner reports these before argument reading, so
	// hitting this from Execute indicates a runner bug.
	errUnknownOperation = errors.New("unknown operation")
)
