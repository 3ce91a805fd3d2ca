package gitserver

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/testcontainers/testcontainers-go"
)

// Logger is a minimal logging interface for fixture output.
//
// Fixtures accept any implementation so they work with any testing framework.
// Built-in implementations:
//   - NoopLogger: Discards all output (default)
//   - NewTestLogger: Logs to testing.TB
//   - NewWriterLogger: Logs to io.Writer (e.g., Ginkgo's GinkgoWriter)
//   - NewColoredLogger: Colors lines by level tag
//
// NewStructuredLogger adds leveled key=value lines on top of any of them.
type Logger interface {
	Logf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Logf(format string, args ...any) {}

// NoopLogger returns a logger that discards all output.
//
// This is the default logger of every fixture.
//
// Example:
//
//	server, err := plain.NewServer(ctx,
//		plain.WithLogger(gitserver.NoopLogger()),
//	)
func NoopLogger() Logger {
	return noopLogger{}
}

type testLogger struct {
	t testing.TB
}

func (l *testLogger) Logf(format string, args ...any) {
	l.t.Helper()
	l.t.Logf(format, args...)
}

// NewTestLogger creates a logger that outputs to testing.TB.
//
// Example:
//
//	func TestClone(t *testing.T) {
//		server, err := plain.NewServer(ctx,
//			plain.WithLogger(gitserver.NewTestLogger(t)),
//		)
//		// container output appears in `go test -v`
//	}
func NewTestLogger(t testing.TB) Logger {
	return &testLogger{t: t}
}

type writerLogger struct {
	w io.Writer
}

func (l *writerLogger) Logf(format string, args ...any) {
	fmt.Fprintf(l.w, format+"\n", args...)
}

// NewWriterLogger creates a logger that writes to an io.Writer.
// Useful for Ginkgo tests with GinkgoWriter.
func NewWriterLogger(w io.Writer) Logger {
	return &writerLogger{w: w}
}

// lineColors maps level tags to the color of the whole line. The first match wins.
var lineColors = []struct {
	tag   string
	color *color.Color
}{
	{tag: "[ERROR]", color: color.New(color.FgRed)},
	{tag: "[WARN]", color: color.New(color.FgYellow)},
	{tag: "[SUCCESS]", color: color.New(color.FgGreen)},
	{tag: "✅", color: color.New(color.FgGreen)},
	{tag: "[DEBUG]", color: color.New(color.Faint)},
	{tag: "[INFO]", color: color.New(color.FgCyan)},
}

type coloredLogger struct {
	w io.Writer
}

func (l *coloredLogger) Logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	for _, lc := range lineColors {
		if strings.Contains(msg, lc.tag) {
			lc.color.Fprintln(l.w, msg)
			return
		}
	}
	fmt.Fprintln(l.w, msg)
}

// NewColoredLogger creates a logger that colors lines by their level tag.
// Colors follow color.NoColor, so they are dropped when stdout is not a terminal
// or NO_COLOR is set.
func NewColoredLogger(w io.Writer) Logger {
	return &coloredLogger{w: w}
}

// Level is the severity of a StructuredLogger line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSuccess
)

var levelMarks = [...]struct{ emoji, tag string }{
	LevelDebug:   {"🔍", "[DEBUG]"},
	LevelInfo:    {"ℹ️ ", "[INFO]"},
	LevelWarn:    {"⚠️ ", "[WARN]"},
	LevelError:   {"❌", "[ERROR]"},
	LevelSuccess: {"✅", "[SUCCESS]"},
}

// StructuredLogger writes leveled lines with trailing key=value fields, e.g.
//
//	✅ [SUCCESS] SSH git server ready url=ssh://git@localhost:32768/srv/git/testRepo.git
//
// Fixtures use it for their lifecycle steps; command level detail stays on Logf.
type StructuredLogger struct {
	Logger
}

// NewStructuredLogger wraps logger. Wrapping a StructuredLogger returns it unchanged.
func NewStructuredLogger(logger Logger) *StructuredLogger {
	if sl, ok := logger.(*StructuredLogger); ok {
		return sl
	}
	if logger == nil {
		logger = NoopLogger()
	}
	return &StructuredLogger{Logger: logger}
}

func (l *StructuredLogger) Debug(msg string, fields ...any)   { l.emit(LevelDebug, msg, fields) }
func (l *StructuredLogger) Info(msg string, fields ...any)    { l.emit(LevelInfo, msg, fields) }
func (l *StructuredLogger) Warn(msg string, fields ...any)    { l.emit(LevelWarn, msg, fields) }
func (l *StructuredLogger) Error(msg string, fields ...any)   { l.emit(LevelError, msg, fields) }
func (l *StructuredLogger) Success(msg string, fields ...any) { l.emit(LevelSuccess, msg, fields) }

func (l *StructuredLogger) emit(level Level, msg string, fields []any) {
	mark := levelMarks[level]

	var b strings.Builder
	b.WriteString(mark.emoji + " " + mark.tag + " " + msg)
	for i := 0; i < len(fields); i += 2 {
		if i+1 == len(fields) {
			fmt.Fprintf(&b, " %v=<missing>", fields[i])
			break
		}
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}

	l.Logf("%s", b.String())
}

// containerLogger adapts a Logger to testcontainers.LogConsumer.
// Every line is prefixed with the fixture tag, e.g. "[SSH]".
type containerLogger struct {
	logger Logger
	tag    string
}

func (l *containerLogger) Accept(log testcontainers.Log) {
	for _, line := range strings.Split(string(log.Content), "\n") {
		content := strings.TrimSpace(line)
		if content == "" {
			continue
		}
		l.logger.Logf("🖥️  [%s] %s%s", l.tag, markerFor(content), content)
	}
}

func markerFor(content string) string {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(content, "401 Unauthorized"), strings.Contains(content, " 401 "):
		return "🔒 "
	case strings.Contains(content, "403 Forbidden"), strings.Contains(content, " 403 "):
		return "🚫 "
	case strings.Contains(content, "404 Not Found"), strings.Contains(content, " 404 "):
		return "🔍 "
	case strings.Contains(content, "500 Internal Server Error"), strings.Contains(content, " 500 "):
		return "💥 "
	case strings.Contains(content, "201 Created"):
		return "✨ "
	case strings.Contains(lower, "error"):
		return "[ERROR] "
	case strings.Contains(lower, "warn"):
		return "[WARN] "
	default:
		return ""
	}
}
