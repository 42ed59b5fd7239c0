package ports

// Logger is the application-wide structured logger.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info logs an informational message.
	Info(msg string)

	// Warn logs a warning message.
	Warn(msg string)

	// Error logs an error, unwrapping zerr chains into a readable trace.
	Error(err error)
}
