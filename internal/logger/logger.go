package logger

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a logger writing to stdout with the given level and format.
// Unknown levels fall back to debug, unknown formats to console.
func New(level, format string) *Logger {
	return newZapLogger(level, format)
}
