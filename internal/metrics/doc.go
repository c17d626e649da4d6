// Package metrics provides build metrics for autodox runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics never need nil checks at call sites:
//
//	o := autodox.NewOrchestrator(runner).WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// The Prometheus implementation is exposed over HTTP by `autodox watch
// --metrics-addr` through HTTPHandler.
package metrics
