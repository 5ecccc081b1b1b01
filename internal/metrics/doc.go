// Package metrics records what a relnotes run did: documents fetched, updates
// extracted, image cache outcomes, endpoint link resolution tiers and pages
// written.
//
// Components receive a Recorder and default to NoopRecorder. The daemon swaps
// in a PrometheusRecorder and serves it with HTTPHandler.
package metrics
