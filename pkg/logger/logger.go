package logger

// Field is a single structured key/value attached to a log line.
type Field struct {
	Key   string
	Value any
}

// Client is the logging port every component depends on.
type Client interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}
