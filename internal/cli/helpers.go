package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/logging"
	"golang.org/x/term"
)

// NewLogger configures the application logger.
// In debug mode it writes to w (stderr, so stdout stays a clean verdict stream).
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	if debug {
		return logging.NewWithWriter(w, slog.LevelDebug)
	}
	return logging.NewNop()
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// LoadMachine loads the definition at path with the CLI conventions:
// the logger is attached and failures become *ExitError.
func LoadMachine(path string, logger *slog.Logger, opts ...pushdown.Option) (*pushdown.Machine, error) {
	opts = append([]pushdown.Option{pushdown.WithLogger(logger)}, opts...)
	m, err := pushdown.LoadFile(path, opts...)
	if err != nil {
		return nil, LoadError(path, err)
	}
	return m, nil
}
