// Package report renders scan results for human consumption. The console
// renderer draws each repository inside a box-drawing frame with colored
// branch, remote, and file change details, followed by aggregate totals.
package report
