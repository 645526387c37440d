package logging

import (
	"fmt"
	"strings"
	"sync"

	"github.com/neknaj/NEPLg1/internal/report"
)

// Enumeration of log levels, mirroring
// ComedicChimera-chai/src/logging.Logger's level scheme.
const (
	LogLevelSilent = iota
	LogLevelError
	LogLevelWarning
	LogLevelVerbose
)

// Logger renders report.Diagnostic values produced by a compile. It is
// the presentation layer only: the core never imports this package
// and never prints anything itself.
type Logger struct {
	errorCount, warnCount int
	level                 int
	sourceName            string
	source                string
	m                     sync.Mutex
}

var logger *Logger

// Initialize creates the global logger for one compile-and-report
// session. levelName is one of "silent"/"error"/"warning"/"verbose";
// anything else defaults to verbose.
func Initialize(sourceName, source, levelName string) {
	level := LogLevelVerbose
	switch levelName {
	case "silent":
		level = LogLevelSilent
	case "error":
		level = LogLevelError
	case "warning":
		level = LogLevelWarning
	}
	logger = &Logger{level: level, sourceName: sourceName, source: source}
}

// ShouldProceed reports whether no error has been logged so far.
func ShouldProceed() bool {
	return logger == nil || logger.errorCount == 0
}

// LogDiagnostics renders every diagnostic from an Accumulator in order.
func LogDiagnostics(diags []*report.Diagnostic) {
	for _, d := range diags {
		LogDiagnostic(d)
	}
}

// LogDiagnostic renders a single diagnostic. For an error it first
// stops any active phase spinner so the message is not interleaved
// with it; warnings leave the spinner running -- mirrors
// Logger.handleMsg's displayEndPhase(false)-then-print sequence.
func LogDiagnostic(d *report.Diagnostic) {
	if logger == nil {
		return
	}
	logger.m.Lock()
	defer logger.m.Unlock()

	if d.Warning {
		logger.warnCount++
		if logger.level < LogLevelWarning {
			return
		}
	} else {
		logger.errorCount++
		EndPhase(false)
		if logger.level <= LogLevelSilent {
			return
		}
	}

	displayBanner(logger.sourceName, d)
	fmt.Println(d.Message)
	if len(d.Candidates) > 0 {
		fmt.Println("  candidates considered:")
		for _, c := range d.Candidates {
			fmt.Println("    " + c)
		}
	}
	if len(d.Actual) > 0 {
		fmt.Println("  actual: " + strings.Join(d.Actual, ", "))
	}
	fmt.Println(report.RenderSource(logger.source, d.Span))
}

func displayBanner(sourceName string, d *report.Diagnostic) {
	fmt.Print("\n-- ")
	label := d.Kind.String()
	if d.Warning {
		WarnStyleBG.Print(label + " Warning")
	} else {
		ErrorStyleBG.Print(label + " Error")
	}
	fmt.Print(" ")
	InfoColorFG.Printf("%s:%d:%d\n", sourceName, d.Span.StartLine+1, d.Span.StartCol+1)
}

// LogFatal reports a fatal, non-source error (missing stdlib root,
// bad CLI argument) and is intended to be followed by os.Exit by the
// caller -- this package never calls os.Exit itself so it stays usable
// from tests.
func LogFatal(msg string) {
	fmt.Print("\n")
	ErrorStyleBG.Print("Fatal Error ")
	ErrorColorFG.Println(" " + msg)
}

// ErrorCount/WarnCount expose the final tally for the CLI's closing
// summary message.
func ErrorCount() int {
	if logger == nil {
		return 0
	}
	return logger.errorCount
}

func WarnCount() int {
	if logger == nil {
		return 0
	}
	return logger.warnCount
}
