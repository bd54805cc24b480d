// Package gitrepo contains helpers for interrogating Git repositories.
//
// It exposes RepositoryManager for inspecting branches, remotes, upstream
// tracking state, and porcelain status, along with remote URL parsing used to
// recognize GitHub-hosted repositories.
package gitrepo
