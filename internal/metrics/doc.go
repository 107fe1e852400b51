// Package metrics records hook dispatch and build metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics never need nil checks:
//
//	session := hooks.NewSession(store, logger)          // NoopRecorder
//	session = session.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// The CLI activates the Prometheus implementation only when --metrics-file is
// given and writes the gathered registry as a node-exporter textfile at the end
// of the build.
package metrics
