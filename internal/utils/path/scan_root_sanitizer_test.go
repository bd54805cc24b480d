package pathutils_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/uncommitted/internal/utils/path"
)

const sanitizerTestSubtestTemplateConstant = "%d_%s"

func newFixedHomeSanitizer(homeDirectoryPath string) *pathutils.ScanRootSanitizer {
	homeExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return homeDirectoryPath, nil
	})
	return pathutils.NewScanRootSanitizerWithExpander(homeExpander)
}

func TestScanRootSanitizerSanitize(testInstance *testing.T) {
	homeDirectoryPath := filepath.Join(string(filepath.Separator), "home", "scanner")
	projectsDirectoryPath := filepath.Join(string(filepath.Separator), "srv", "projects")
	archiveDirectoryPath := filepath.Join(string(filepath.Separator), "srv", "archive")

	testCases := []struct {
		name           string
		candidateRoots []string
		expectedRoots  []string
	}{
		{
			name:           "trims_and_drops_blank_roots",
			candidateRoots: []string{"  " + projectsDirectoryPath + "\t", "", "   "},
			expectedRoots:  []string{projectsDirectoryPath},
		},
		{
			name:           "expands_tilde_into_home",
			candidateRoots: []string{filepath.Join("~", "code")},
			expectedRoots:  []string{filepath.Join(homeDirectoryPath, "code")},
		},
		{
			name:           "bare_tilde_becomes_home",
			candidateRoots: []string{"~"},
			expectedRoots:  []string{homeDirectoryPath},
		},
		{
			name:           "tilde_name_without_separator_kept_verbatim",
			candidateRoots: []string{"~backup"},
			expectedRoots:  []string{"~backup"},
		},
		{
			name:           "prunes_roots_nested_in_other_roots",
			candidateRoots: []string{projectsDirectoryPath, filepath.Join(projectsDirectoryPath, "api", "internal"), archiveDirectoryPath},
			expectedRoots:  []string{projectsDirectoryPath, archiveDirectoryPath},
		},
		{
			name:           "prunes_nested_root_listed_before_parent",
			candidateRoots: []string{filepath.Join(projectsDirectoryPath, "api"), projectsDirectoryPath},
			expectedRoots:  []string{projectsDirectoryPath},
		},
		{
			name:           "drops_repeated_roots_keeping_first_spelling",
			candidateRoots: []string{projectsDirectoryPath, projectsDirectoryPath + string(filepath.Separator)},
			expectedRoots:  []string{projectsDirectoryPath},
		},
		{
			name:           "expanded_home_prunes_nested_tilde_roots",
			candidateRoots: []string{"~", filepath.Join("~", "code")},
			expectedRoots:  []string{homeDirectoryPath},
		},
		{
			name:           "preserves_input_order",
			candidateRoots: []string{archiveDirectoryPath, projectsDirectoryPath},
			expectedRoots:  []string{archiveDirectoryPath, projectsDirectoryPath},
		},
		{
			name:           "returns_nil_when_nothing_survives",
			candidateRoots: []string{"", "   ", "\t"},
			expectedRoots:  nil,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(sanitizerTestSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			sanitizer := newFixedHomeSanitizer(homeDirectoryPath)

			sanitizedRoots := sanitizer.Sanitize(testCase.candidateRoots)
			require.Equal(testInstance, testCase.expectedRoots, sanitizedRoots)
		})
	}
}

func TestScanRootSanitizerKeepsTildeWhenHomeLookupFails(testInstance *testing.T) {
	failingExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("home directory unavailable")
	})
	sanitizer := pathutils.NewScanRootSanitizerWithExpander(failingExpander)

	tildeRoot := filepath.Join("~", "code")
	require.Equal(testInstance, []string{tildeRoot}, sanitizer.Sanitize([]string{tildeRoot}))
}

func TestHomeExpanderCachesProviderLookup(testInstance *testing.T) {
	homeDirectoryPath := filepath.Join(string(filepath.Separator), "home", "scanner")

	providerCallCount := 0
	homeExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		providerCallCount++
		return homeDirectoryPath, nil
	})

	require.Equal(testInstance, homeDirectoryPath, homeExpander.Expand("~"))
	require.Equal(testInstance, filepath.Join(homeDirectoryPath, "code"), homeExpander.Expand(filepath.Join("~", "code")))
	require.Equal(testInstance, 1, providerCallCount)
}
