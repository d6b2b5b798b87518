// =============================================================================
// Commerce CSV - Commerce Operations
// =============================================================================
//
// This module implements the three user-facing operations on top of the
// record store:
//
//   consolidate : merge several record files into one output file
//   search      : filter records by name, category and price range
//   report      : write a text summary (count, quantity, value) of a file
//
// The service is stateless. Every call reads what it needs from the store
// and discards it when it returns. Result lines (search hits, confirmations)
// are written to the Out writer; diagnostics go to the Logger.
//
// =============================================================================

package commerce

import (
	"io"
	"os"

	"github.com/ginjaninja78/commerce-csv/internal/logging"
	"github.com/ginjaninja78/commerce-csv/internal/store"
)

// Logger is an interface for logging. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Options configures a Service.
type Options struct {
	// Out receives the operations' result lines. Default: os.Stdout.
	Out io.Writer

	// Logger receives diagnostics. Default: a discarding logger.
	Logger Logger
}

// Service runs commerce operations against a record store.
type Service struct {
	store  *store.Store
	out    io.Writer
	logger Logger
}

// New creates a Service.
func New(st *store.Store, opts Options) *Service {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Service{
		store:  st,
		out:    opts.Out,
		logger: opts.Logger,
	}
}
