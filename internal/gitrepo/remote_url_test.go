package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/uncommitted/internal/gitrepo"
)

func TestParseRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name        string
		remote      string
		expected    gitrepo.RemoteURL
		expectError bool
	}{
		{
			name:   "parses_scp_style_ssh_remote",
			remote: "git@github.com:owner/example.git",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolSSH,
				Host:       "github.com",
				Owner:      "owner",
				Repository: "example",
			},
		},
		{
			name:   "parses_ssh_protocol_remote",
			remote: "ssh://git@github.com/owner/example.git",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolSSH,
				Host:       "github.com",
				Owner:      "owner",
				Repository: "example",
			},
		},
		{
			name:   "parses_https_remote",
			remote: "https://github.com/owner/example.git",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolHTTPS,
				Host:       "github.com",
				Owner:      "owner",
				Repository: "example",
			},
		},
		{
			name:   "parses_https_remote_without_suffix",
			remote: "https://gitlab.com/group/project",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolHTTPS,
				Host:       "gitlab.com",
				Owner:      "group",
				Repository: "project",
			},
		},
		{
			name:   "parses_scp_remote_with_nested_group",
			remote: "git@gitlab.com:group/subgroup/project.git",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolSSH,
				Host:       "gitlab.com",
				Owner:      "group",
				Repository: "subgroup/project",
			},
		},
		{
			name:        "rejects_empty_remote",
			remote:      "   ",
			expectError: true,
		},
		{
			name:        "rejects_unrecognized_remote",
			remote:      "ftp://example.com/owner/repo",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedRemote, parseError := gitrepo.ParseRemoteURL(testCase.remote)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				require.IsType(testInstance, gitrepo.RemoteURLParseError{}, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expected, parsedRemote)
		})
	}
}

func TestIsGitHubRemote(testInstance *testing.T) {
	testCases := []struct {
		name     string
		remote   string
		expected bool
	}{
		{name: "recognizes_ssh_github_remote", remote: "git@github.com:owner/example.git", expected: true},
		{name: "recognizes_https_github_remote", remote: "https://github.com/owner/example.git", expected: true},
		{name: "recognizes_enterprise_subdomain", remote: "https://corp.github.com/owner/example.git", expected: true},
		{name: "recognizes_unparsable_github_remote", remote: "git://github.com/owner/example.git", expected: true},
		{name: "rejects_gitlab_remote", remote: "https://gitlab.com/group/project.git", expected: false},
		{name: "rejects_lookalike_host", remote: "https://github.company.com/owner/example.git", expected: false},
		{name: "rejects_empty_remote", remote: "", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, gitrepo.IsGitHubRemote(testCase.remote))
		})
	}
}
