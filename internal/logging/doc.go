// Package logging configures slog output for flightrec.
//
// Two handler formats are supported: a compact console format for
// interactive use and JSON for machine consumption. Component loggers
// carry a standardized "component" attribute which the console handler
// folds into the message prefix.
package logging
