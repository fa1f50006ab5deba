// Package cli constructs the bundlekit command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and diagnostic logging.
// It exposes helpers to build application instances with injected
// collaborators and to execute the default command set.
package cli
