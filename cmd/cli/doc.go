// Package cli constructs the uncommitted command-line interface, wiring the
// Cobra root command, configuration loader, and structured logging
// primitives. It exposes helpers to build reusable application instances and
// to execute the repository scanner as a reusable library.
package cli
