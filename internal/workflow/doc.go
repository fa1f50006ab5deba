// Package workflow runs declarative build pipelines.
//
// A pipeline file lists ordered steps. Each step names an operation (exec or
// report) and carries a `with` option map that is decoded into the typed
// options of that operation. Exec steps run a command through the fail-fast
// shell executor with the project's .env variables; report steps print the
// asset size report for a finished build.
package workflow
