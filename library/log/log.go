// Package log is a context-aware levelled logger. Entries go to stderr until
// Init attaches a Cloud Logging client, after which they carry the trace of
// the span found in the context.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/logging"
	"go.opencensus.io/trace"
	mrpb "google.golang.org/genproto/googleapis/api/monitoredres"
)

// Severity orders log entries.
type Severity int

const (
	Debug Severity = iota
	Info
	Warning
	Error
	Critical
)

func (s Severity) String() string {
	switch s {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}

type sink interface {
	write(ctx context.Context, sev Severity, msg string)
}

var mu sync.RWMutex

var (
	level Severity = Info
	out   sink     = &writerSink{w: os.Stderr}
)

// SetLevel sets the lowest severity that is written.
func SetLevel(s Severity) {
	mu.Lock()
	defer mu.Unlock()
	level = s
}

// SetOutput sends entries to w, detaching any Cloud Logging client.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = &writerSink{w: w}
}

// Init routes entries to Cloud Logging under logID. The returned func flushes
// pending entries and restores the previous output.
func Init(ctx context.Context, projectID, logID string) (func() error, error) {
	client, err := logging.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("logging client: %w", err)
	}

	res := &mrpb.MonitoredResource{
		Type:   "global",
		Labels: map[string]string{"project_id": projectID},
	}
	cs := &cloudSink{
		logger:    client.Logger(logID, logging.CommonResource(res)),
		projectID: projectID,
	}

	mu.Lock()
	prev := out
	out = cs
	mu.Unlock()

	return func() error {
		mu.Lock()
		out = prev
		mu.Unlock()
		return client.Close()
	}, nil
}

// Debugf ...
func Debugf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, Debug, format, args...)
}

// Infof ...
func Infof(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, Info, format, args...)
}

// Warningf ...
func Warningf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, Warning, format, args...)
}

// Errorf ...
func Errorf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, Error, format, args...)
}

// Criticalf ...
func Criticalf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, Critical, format, args...)
}

func logf(ctx context.Context, sev Severity, format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sev < level {
		return
	}
	out.write(ctx, sev, fmt.Sprintf(format, args...))
}

type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *writerSink) write(_ context.Context, sev Severity, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "%s [%s] %s\n", time.Now().Format(time.RFC3339), sev, strings.TrimRight(msg, "\n"))
}

type cloudSink struct {
	logger    *logging.Logger
	projectID string
}

func (s *cloudSink) write(ctx context.Context, sev Severity, msg string) {
	e := logging.Entry{
		Severity: cloudSeverity(sev),
		Payload:  msg,
	}
	if span := trace.FromContext(ctx); span != nil {
		sc := span.SpanContext()
		e.Trace = fmt.Sprintf("projects/%s/traces/%s", s.projectID, sc.TraceID)
		e.SpanID = sc.SpanID.String()
	}
	s.logger.Log(e)
}

func cloudSeverity(sev Severity) logging.Severity {
	switch sev {
	case Debug:
		return logging.Debug
	case Info:
		return logging.Info
	case Warning:
		return logging.Warning
	case Error:
		return logging.Error
	default:
		return logging.Critical
	}
}
