package gitrepo

import (
	"fmt"
	"strings"
)

const (
	sshSchemePrefixConstant          = "ssh://"
	httpsSchemePrefixConstant        = "https://"
	scpLikeUserPrefixConstant        = "git@"
	userHostDelimiterConstant        = "@"
	scpPathDelimiterConstant         = ":"
	remotePathSeparatorConstant      = "/"
	repositorySuffixConstant         = ".git"
	gitHubHostConstant               = "github.com"
	gitHubHostSuffixConstant         = "." + gitHubHostConstant
	remoteParseErrorTemplateConstant = "%s: %s"
	invalidRemoteMessageConstant     = "invalid remote url"
	emptyRemoteMessageConstant       = "value is required"
)

// RemoteProtocol enumerates supported git remote protocols.
type RemoteProtocol string

// Supported remote protocols.
const (
	RemoteProtocolSSH   RemoteProtocol = "ssh"
	RemoteProtocolHTTPS RemoteProtocol = "https"
)

// RemoteURL is the structured form of a git remote address.
type RemoteURL struct {
	Protocol   RemoteProtocol
	Host       string
	Owner      string
	Repository string
}

// RemoteURLParseError indicates a remote string could not be parsed.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

func newParseError(input string, message string) RemoteURLParseError {
	return RemoteURLParseError{Input: input, Message: message}
}

// ParseRemoteURL converts a textual remote address into its structured form.
// Three spellings are recognized: scp-like "git@host:owner/repo", the ssh
// scheme "ssh://user@host/owner/repo", and "https://host/owner/repo". A
// trailing ".git" is stripped from the repository name.
func ParseRemoteURL(remote string) (RemoteURL, error) {
	trimmedRemote := strings.TrimSpace(remote)
	switch {
	case len(trimmedRemote) == 0:
		return RemoteURL{}, newParseError(remote, emptyRemoteMessageConstant)
	case strings.HasPrefix(trimmedRemote, sshSchemePrefixConstant):
		return parseSSHRemote(strings.TrimPrefix(trimmedRemote, sshSchemePrefixConstant))
	case strings.HasPrefix(trimmedRemote, scpLikeUserPrefixConstant):
		return parseSSHRemote(trimmedRemote)
	case strings.HasPrefix(trimmedRemote, httpsSchemePrefixConstant):
		return parseHTTPSRemote(strings.TrimPrefix(trimmedRemote, httpsSchemePrefixConstant))
	default:
		return RemoteURL{}, newParseError(remote, invalidRemoteMessageConstant)
	}
}

// IsGitHubRemote reports whether the remote address points at a GitHub host.
// Remotes that fail structured parsing fall back to a substring check so
// unusual but recognizable URLs still pick up the label.
func IsGitHubRemote(remote string) bool {
	parsedRemote, parseError := ParseRemoteURL(remote)
	if parseError != nil {
		return strings.Contains(strings.ToLower(remote), gitHubHostConstant)
	}
	normalizedHost := strings.ToLower(parsedRemote.Host)
	return normalizedHost == gitHubHostConstant || strings.HasSuffix(normalizedHost, gitHubHostSuffixConstant)
}

func parseSSHRemote(remote string) (RemoteURL, error) {
	_, hostAndPath, userPresent := strings.Cut(remote, userHostDelimiterConstant)
	if !userPresent {
		return RemoteURL{}, newParseError(remote, invalidRemoteMessageConstant)
	}

	host, ownerAndRepository, pathPresent := splitHostAndPath(hostAndPath)
	if !pathPresent {
		return RemoteURL{}, newParseError(remote, invalidRemoteMessageConstant)
	}
	return assembleRemoteURL(RemoteProtocolSSH, remote, host, ownerAndRepository)
}

func parseHTTPSRemote(remote string) (RemoteURL, error) {
	host, ownerAndRepository, pathPresent := strings.Cut(remote, remotePathSeparatorConstant)
	if !pathPresent {
		return RemoteURL{}, newParseError(remote, invalidRemoteMessageConstant)
	}
	return assembleRemoteURL(RemoteProtocolHTTPS, remote, host, ownerAndRepository)
}

// splitHostAndPath separates the host from the owner/repository path. The
// scp-like colon form wins over the slash form when both are present.
func splitHostAndPath(hostAndPath string) (string, string, bool) {
	if host, ownerAndRepository, colonFound := strings.Cut(hostAndPath, scpPathDelimiterConstant); colonFound {
		return host, ownerAndRepository, true
	}
	return strings.Cut(hostAndPath, remotePathSeparatorConstant)
}

func assembleRemoteURL(protocol RemoteProtocol, remote string, host string, ownerAndRepository string) (RemoteURL, error) {
	owner, repositoryPath, repositoryPresent := strings.Cut(ownerAndRepository, remotePathSeparatorConstant)
	if !repositoryPresent {
		return RemoteURL{}, newParseError(remote, invalidRemoteMessageConstant)
	}

	repositoryName := strings.TrimSuffix(repositoryPath, repositorySuffixConstant)
	if len(host) == 0 || len(owner) == 0 || len(repositoryName) == 0 {
		return RemoteURL{}, newParseError(remote, invalidRemoteMessageConstant)
	}
	return RemoteURL{Protocol: protocol, Host: host, Owner: owner, Repository: repositoryName}, nil
}
