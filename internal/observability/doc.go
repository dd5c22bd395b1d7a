// Package observability provides event logging, run metrics, and fleet
// alerting for the simulation. Events persist as structured JSON Lines
// (JSONL); metrics are derived on demand from the event log, and alerts are
// evaluated against read-only fleet status snapshots.
package observability
