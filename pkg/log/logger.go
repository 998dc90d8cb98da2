package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

// Logger is the leveled logger handed to renderer components.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Noticef(format string, v ...interface{})
	Warningf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a logger tagged with the given module name.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// OrDefault returns l, or a logger for module when l is nil.
func OrDefault(l Logger, module string) Logger {
	if l != nil {
		return l
	}
	return New(module)
}

// SetSink redirects all log output to sink.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(formatted)
	leveledBackend.SetLevel(logging.NOTICE, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity for every module.
func SetLevel(level Level) {
	var l logging.Level
	switch level {
	case Debug:
		l = logging.DEBUG
	case Info:
		l = logging.INFO
	case Notice:
		l = logging.NOTICE
	case Warning:
		l = logging.WARNING
	case Error:
		l = logging.ERROR
	}
	leveledBackend.SetLevel(l, "")
}

func init() {
	SetSink(os.Stderr)
	SetLevel(Notice)
}
