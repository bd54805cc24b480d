// Package scan discovers git repositories beneath configured roots and
// aggregates their uncommitted state.
//
// The package walks directory trees looking for repository markers, queries
// git for branch, remote, and divergence facts, parses porcelain status
// output into structured file changes, and hands the assembled report to a
// presenter. Repositories without changes are dropped from the report.
package scan
