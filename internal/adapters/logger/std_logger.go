package logger

import (
	"os"

	"github.com/baditaflorin/go_fastq_chunker/internal/ports"
	"github.com/baditaflorin/l"
)

// StdLogger adapts an l.Logger to the ports.Logger interface.
type StdLogger struct {
	logger l.Logger
}

// NewStdLogger creates the default logger used when callers do not
// supply their own.
func NewStdLogger() (ports.Logger, error) {
	lg, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      os.Stderr,
		JsonFormat:  false,
		AsyncWrite:  true,
		BufferSize:  256 * 1024,
		MaxFileSize: 10 * 1024 * 1024,
		MaxBackups:  3,
		AddSource:   false,
	})
	if err != nil {
		return nil, err
	}
	return &StdLogger{logger: lg}, nil
}

// FromExisting wraps an already configured l.Logger.
func FromExisting(lg l.Logger) ports.Logger {
	return &StdLogger{logger: lg}
}

// Debug logs a debug message.
func (s *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (s *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (s *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (s *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close flushes and closes the underlying logger.
func (s *StdLogger) Close() error {
	return s.logger.Close()
}
