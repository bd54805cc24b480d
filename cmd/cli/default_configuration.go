package cli

import _ "embed"

// defaultConfigurationData ships the baseline config.yaml so the CLI runs
// with sensible scan settings before any user configuration exists.
//
//go:embed default_config.yaml
var defaultConfigurationData []byte

// EmbeddedDefaultConfiguration returns a copy of the embedded default
// configuration and its type identifier for the configuration loader.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return append([]byte(nil), defaultConfigurationData...), configurationTypeConstant
}
