package flags

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(testInstance *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "log_level_default_highlighted",
			defaultChoice:  "info",
			choices:        []string{"debug", "info", "warn", "error"},
			description:    "Log verbosity.",
			expectedOutput: "`<debug|INFO|warn|error>` Log verbosity.",
		},
		{
			name:           "log_format_default_highlighted",
			defaultChoice:  "structured",
			choices:        []string{"structured", "console"},
			description:    "Log output format.",
			expectedOutput: "`<STRUCTURED|console>` Log output format.",
		},
		{
			name:           "missing_description_omits_suffix",
			defaultChoice:  "console",
			choices:        []string{"structured", "console"},
			description:    "",
			expectedOutput: "`<structured|CONSOLE>`",
		},
		{
			name:           "repeated_choices_collapse",
			defaultChoice:  "warn",
			choices:        []string{"warn", "warn", "error", "error"},
			description:    "Pick a severity.",
			expectedOutput: "`<WARN|error>` Pick a severity.",
		},
		{
			name:           "choices_trimmed_and_blank_dropped",
			defaultChoice:  "debug",
			choices:        []string{" debug ", "", " info "},
			description:    "Pick a severity.",
			expectedOutput: "`<DEBUG|info>` Pick a severity.",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			formattedUsage := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(testInstance, testCase.expectedOutput, formattedUsage)
		})
	}
}
