package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Logger é a interface para logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// SimpleLogger é uma implementação simples de Logger
type SimpleLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	warnLogger  *log.Logger
	debug       bool
}

// NewLogger cria uma nova instância de Logger
func NewLogger() Logger {
	return NewLoggerWithWriters(os.Stdout, os.Stderr, os.Getenv("GIN_MODE") != "release")
}

// NewLoggerWithWriters cria um Logger escrevendo nos writers informados
func NewLoggerWithWriters(out, errOut io.Writer, debug bool) *SimpleLogger {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	return &SimpleLogger{
		infoLogger:  log.New(out, "INFO: ", flags),
		errorLogger: log.New(errOut, "ERROR: ", flags),
		debugLogger: log.New(out, "DEBUG: ", flags),
		warnLogger:  log.New(out, "WARN: ", flags),
		debug:       debug,
	}
}

// Info registra uma mensagem de informação
func (l *SimpleLogger) Info(msg string, keysAndValues ...interface{}) {
	l.infoLogger.Output(2, format(msg, keysAndValues))
}

// Error registra uma mensagem de erro
func (l *SimpleLogger) Error(msg string, keysAndValues ...interface{}) {
	l.errorLogger.Output(2, format(msg, keysAndValues))
}

// Debug registra uma mensagem de debug; ignorada em modo release
func (l *SimpleLogger) Debug(msg string, keysAndValues ...interface{}) {
	if !l.debug {
		return
	}
	l.debugLogger.Output(2, format(msg, keysAndValues))
}

// Warn registra uma mensagem de aviso
func (l *SimpleLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.warnLogger.Output(2, format(msg, keysAndValues))
}

func format(msg string, keysAndValues []interface{}) string {
	if len(keysAndValues) == 0 {
		return msg
	}

	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		b.WriteByte(' ')
		if i+1 == len(keysAndValues) {
			fmt.Fprintf(&b, "extra=%v", keysAndValues[i])
			break
		}
		fmt.Fprintf(&b, "%v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	return b.String()
}

// Nop retorna um Logger que descarta tudo
func Nop() Logger {
	return NewLoggerWithWriters(io.Discard, io.Discard, false)
}
