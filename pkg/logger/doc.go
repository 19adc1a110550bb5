// Package logger builds the process-wide slog.Logger and provides typed
// attribute helpers so log keys stay consistent across packages.
//
// Format and level come from configuration: JSON for aggregation in
// production, text for local reading. Secrets never appear as attributes;
// there are deliberately no helpers for passwords, codes, or tokens.
package logger
