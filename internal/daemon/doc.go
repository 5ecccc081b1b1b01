// Package daemon keeps generated pages current: it re-runs the API sync and
// the release-notes pipeline on an interval and whenever the configuration
// file changes, and optionally serves Prometheus metrics and a health report.
package daemon
