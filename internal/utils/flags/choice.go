// Package flags formats pflag usage strings shared by the CLI commands.
package flags

import "strings"

const (
	choiceListOpenerConstant          = "<"
	choiceListCloserConstant          = ">"
	choiceListSeparatorConstant       = "|"
	usagePlaceholderQuoteConstant     = "`"
	usageDescriptionSeparatorConstant = " "
)

// FormatChoiceUsage renders a flag usage string whose backticked placeholder
// lists the accepted choices with the default spelled in upper case.
// Blank choices are dropped and repeated choices keep their first spelling.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	usageBuilder := strings.Builder{}
	usageBuilder.WriteString(usagePlaceholderQuoteConstant)
	usageBuilder.WriteString(choiceListOpenerConstant)
	usageBuilder.WriteString(strings.Join(normalizeChoices(defaultChoice, choices), choiceListSeparatorConstant))
	usageBuilder.WriteString(choiceListCloserConstant)
	usageBuilder.WriteString(usagePlaceholderQuoteConstant)

	if len(strings.TrimSpace(description)) > 0 {
		usageBuilder.WriteString(usageDescriptionSeparatorConstant)
		usageBuilder.WriteString(description)
	}
	return usageBuilder.String()
}

func normalizeChoices(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))

	displayChoices := make([]string, 0, len(choices))
	seenChoices := make(map[string]struct{}, len(choices))
	for _, candidateChoice := range choices {
		trimmedChoice := strings.TrimSpace(candidateChoice)
		if len(trimmedChoice) == 0 {
			continue
		}

		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, alreadySeen := seenChoices[normalizedChoice]; alreadySeen {
			continue
		}
		seenChoices[normalizedChoice] = struct{}{}

		if normalizedChoice == normalizedDefault {
			trimmedChoice = strings.ToUpper(trimmedChoice)
		}
		displayChoices = append(displayChoices, trimmedChoice)
	}
	return displayChoices
}
