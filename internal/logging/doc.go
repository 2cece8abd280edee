// Package logging configures log/slog for installcheck.
//
// Without --debug, warnings and errors go to stderr as text and nothing is
// written to disk. With --debug, every check outcome is logged as JSON to
// ~/.installcheck/logs/installcheck.log, rotated by size.
package logging
