// Package abort implements the process-wide fail-fast path: it reports a
// fatal message followed by "Aborting." and terminates the process.
package abort
