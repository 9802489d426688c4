package log

// MultiLogger fans each event out to a set of loggers, e.g. console output
// through SlogAdapter alongside a FileLogger.
type MultiLogger []Logger

// NewMultiLogger combines the given loggers into one.
func NewMultiLogger(loggers ...Logger) MultiLogger {
	return MultiLogger(loggers)
}

// Log sends the event to every logger in order.
func (m MultiLogger) Log(event Event) {
	for _, l := range m {
		l.Log(event)
	}
}

var _ Logger = MultiLogger(nil)
