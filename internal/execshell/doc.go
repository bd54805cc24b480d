// Package execshell provides structured helpers for invoking git.
//
// It wraps os/exec behind ShellExecutor, which logs every invocation,
// notifies an optional CommandEventObserver, and reports non-zero exit
// codes as CommandFailedError so callers can treat absence probes (missing
// upstreams, unmatched refs, ignore checks) as data rather than failures.
package execshell
