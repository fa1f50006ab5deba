// Package execshell runs external build tools for bundlekit.
//
// ShellExecutor executes a command line synchronously in a required working
// directory with inherited standard streams, reports lifecycle events to a
// CommandEventObserver, and routes any non-zero exit, signal termination, or
// start failure to the abort path. OSCommandRunner is the os/exec backed
// CommandRunner used outside of tests.
package execshell
