package logger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Logger writes category-tagged log lines to stdout (colored) and,
// when LOG_FILE is set, mirrors them to a plain-text file.
type Logger struct {
	mu    sync.Mutex
	file  *os.File
	debug bool
}

var (
	infoColor    = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	debugColor   = color.New(color.FgCyan)
	processColor = color.New(color.FgMagenta, color.Bold)
)

func NewLogger() *Logger {
	l := &Logger{
		debug: os.Getenv("LOG_DEBUG") == "true",
	}

	if path := os.Getenv("LOG_FILE"); path != "" {
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			l.file = file
		} else {
			fmt.Fprintf(os.Stderr, "logger: cannot open %s: %v\n", path, err)
		}
	}

	return l
}

func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

func (l *Logger) write(c *color.Color, level, category, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	c.Printf("%s [%s] [%s] %s\n", timestamp, level, category, message)

	if l.file != nil {
		fmt.Fprintf(l.file, "%s [%s] [%s] %s\n", timestamp, level, category, message)
	}
}

func (l *Logger) Info(category, message string) {
	l.write(infoColor, "INFO", category, message)
}

func (l *Logger) Warn(category, message string) {
	l.write(warnColor, "WARN", category, message)
}

func (l *Logger) Error(category, message string) {
	l.write(errorColor, "ERROR", category, message)
}

func (l *Logger) Debug(category, message string) {
	if !l.debug {
		return
	}
	l.write(debugColor, "DEBUG", category, message)
}

func (l *Logger) Fatal(category, message string) {
	l.write(errorColor, "FATAL", category, message)
	l.Close()
	os.Exit(1)
}

// LogProcess marks lifecycle steps (startup, shutdown, component init).
func (l *Logger) LogProcess(stage, message string) {
	l.write(processColor, "PROCESS", stage, message)
}

func (l *Logger) LogDatabase(operation, table, message string) {
	l.write(infoColor, "DB", fmt.Sprintf("%s:%s", operation, table), message)
}

func (l *Logger) LogKafka(operation, topic, message string) {
	l.write(infoColor, "KAFKA", fmt.Sprintf("%s:%s", operation, topic), message)
}

func (l *Logger) LogAPI(method, path, status, duration string) {
	l.write(infoColor, "API", method, fmt.Sprintf("%s - %s (%s)", path, status, duration))
}

func (l *Logger) LogCallback(stage, reference, message string) {
	l.write(infoColor, "CALLBACK", fmt.Sprintf("%s:%s", stage, reference), message)
}

func (l *Logger) LogCustomer(stage, reference, message string) {
	l.write(infoColor, "CUSTOMER", fmt.Sprintf("%s:%s", stage, reference), message)
}

func (l *Logger) LogSecurity(event, message string) {
	l.write(warnColor, "SECURITY", event, message)
}
