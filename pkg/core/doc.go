// Package core provides a small, stable facade over Pathwarden's internal
// scanner for external integrations. It deliberately re-exports a narrow API
// surface so third-party tools can depend on a stable import path without
// exposing internal implementation packages.
//
// Example:
//
//	cfg := core.Config{Root: "."}
//	rep, err := core.Scan(cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalReport(os.Stdout, rep)
package core
