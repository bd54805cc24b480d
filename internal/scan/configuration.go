package scan

import "strings"

const (
	defaultBoxWidthConstant          = 80
	minimumBoxWidthConstant          = 60
	configurationRootsKeyConstant    = "roots"
	configurationBoxWidthKeyConstant = "box_width"
)

// CommandConfiguration captures persistent settings for the scan command.
type CommandConfiguration struct {
	Roots    []string `mapstructure:"roots"`
	BoxWidth int      `mapstructure:"box_width"`
}

// DefaultCommandConfiguration returns baseline configuration values for the scan command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Roots:    nil,
		BoxWidth: defaultBoxWidthConstant,
	}
}

// DefaultConfigurationValues exposes scan defaults keyed for the configuration loader.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationRootsKeyConstant:    defaults.Roots,
		rootKey + "." + configurationBoxWidthKeyConstant: defaults.BoxWidth,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Roots = sanitizeRoots(configuration.Roots)

	if sanitized.BoxWidth == 0 {
		sanitized.BoxWidth = defaultBoxWidthConstant
	}
	if sanitized.BoxWidth < minimumBoxWidthConstant {
		sanitized.BoxWidth = minimumBoxWidthConstant
	}

	return sanitized
}

func sanitizeRoots(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.TrimSpace(raw[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
