package utils

import "context"

// commandContextKey keys the values this package stores in command contexts.
type commandContextKey int

const configurationFilePathContextKey commandContextKey = iota

// CommandContextAccessor reads and writes the values the CLI threads through
// cobra command contexts between the persistent pre-run and the command run.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath returns a context carrying the resolved
// configuration file path. A nil parent starts from context.Background.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextKey, configurationFilePath)
}

// ConfigurationFilePath reports the configuration file path stored in the
// context and whether one was stored.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, pathStored := executionContext.Value(configurationFilePathContextKey).(string)
	return configurationFilePath, pathStored
}
