// Package tracing wires OpenCensus spans to Cloud Trace.
package tracing

import (
	"fmt"
	"net/http"

	"contrib.go.opencensus.io/exporter/stackdriver"
	"contrib.go.opencensus.io/exporter/stackdriver/propagation"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

// Init registers a Cloud Trace exporter sampling the given fraction of
// requests. Call the returned func before exit to flush buffered spans.
func Init(projectID string, fraction float64) (func(), error) {
	exporter, err := stackdriver.NewExporter(stackdriver.Options{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("stackdriver exporter: %w", err)
	}
	trace.RegisterExporter(exporter)
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.ProbabilitySampler(fraction)})

	return func() {
		exporter.Flush()
		trace.UnregisterExporter(exporter)
	}, nil
}

// Handler starts a span per request, continuing any X-Cloud-Trace-Context
// sent by the load balancer.
func Handler(h http.Handler) http.Handler {
	return &ochttp.Handler{
		Handler:     h,
		Propagation: &propagation.HTTPFormat{},
	}
}
