package paperdoll

import "go.uber.org/zap"

// logger is the package logger. It discards everything until SetLogger is
// called.
var logger = zap.NewNop()

// SetLogger replaces the package logger. A nil logger restores the no-op
// logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l.Named("paperdoll")
}

// Logger returns the package logger.
func Logger() *zap.Logger {
	return logger
}
