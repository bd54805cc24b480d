// Package ui surfaces command execution feedback to CLI users.
//
// ConsoleCommandEventLogger observes the git invocations made during a scan
// and logs one concise line per lifecycle event, keeping routine absence
// probes at debug severity so large scans stay quiet by default.
package ui
