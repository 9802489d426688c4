// Package log provides a structured audit trail for dataset and discovery events.
//
// This package defines the Logger interface and Event types capturing the
// lifecycle of stored operational datasets and discovered border routers.
// It is separate from operational logging (slog) - the audit trail is a
// complete machine-readable record for debugging and analysis.
//
// # Basic Usage
//
// Applications configure auditing by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.Audit = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.Audit, _ = log.NewFileLogger("/var/lib/threadnet/audit.tlog")
//
// # File Format
//
// Audit files use CBOR encoding with integer map keys, one event per record.
// The Reader type streams and filters them.
package log
