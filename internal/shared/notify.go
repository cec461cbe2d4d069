package shared

import "github.com/charmbracelet/log"

// Notifier surfaces transient, user-visible messages for store operations.
//
// Stores report outcomes through a Notifier in addition to returning typed
// errors, so callers can test state transitions without a UI attached.
type Notifier interface {
	Success(format string, args ...any)
	Error(format string, args ...any)
	// Dismiss clears any still-visible messages before a replacement is shown.
	Dismiss()
}

// LogNotifier is the default [Notifier], writing through a [log.Logger].
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier creates a LogNotifier. A nil logger falls back to [NewLogger].
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = NewLogger(nil)
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Success(format string, args ...any) {
	n.logger.Infof(format, args...)
}

func (n *LogNotifier) Error(format string, args ...any) {
	n.logger.Errorf(format, args...)
}

// Dismiss is a no-op for log output; messages scroll rather than stack.
func (n *LogNotifier) Dismiss() {}
