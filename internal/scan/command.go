package scan

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/uncommitted/internal/execshell"
	pathutils "github.com/temirov/uncommitted/internal/utils/path"
)

const (
	commandUseConstant               = "uncommitted [root]"
	commandShortDescriptionConstant  = "Scan directories for git repositories with uncommitted changes"
	commandLongDescriptionConstant   = "uncommitted walks a directory tree, inspects every git repository it finds, and reports staged, unstaged, and untracked changes together with branch and push state."
	missingPresenterMessageConstant  = "scan command requires a report presenter factory"
	unresolvableRootTemplateConstant = "cannot resolve scan root %q: %w"
	notDirectoryTemplateConstant     = "scan root %q is not a directory"
)

var errMissingPresenterFactory = errors.New(missingPresenterMessageConstant)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persistent configuration for the scan command.
type ConfigurationProvider func() CommandConfiguration

// WorkingDirectoryResolver supplies the fallback scan root when neither an
// argument nor configuration names one.
type WorkingDirectoryResolver func() (string, error)

// CommandBuilder assembles the scan cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider           LoggerProvider
	ConfigurationProvider    ConfigurationProvider
	Walker                   RepositoryWalker
	GitExecutor              GitExecutor
	GitManager               GitRepositoryManager
	PresenterFactory         PresenterFactory
	CommandEventsObserver    execshell.CommandEventObserver
	WorkingDirectoryResolver WorkingDirectoryResolver
}

// Build constructs the cobra command that runs the repository scan.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	if builder.PresenterFactory == nil {
		return nil, errMissingPresenterFactory
	}

	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.resolveOptions(arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()

	gitExecutor, executorError := ResolveGitExecutor(builder.GitExecutor, logger, builder.CommandEventsObserver)
	if executorError != nil {
		return executorError
	}

	gitManager, managerError := ResolveGitRepositoryManager(builder.GitManager, gitExecutor)
	if managerError != nil {
		return managerError
	}

	walker := ResolveRepositoryWalker(builder.Walker, logger)
	presenter := builder.PresenterFactory(command.OutOrStdout(), options.BoxWidth)

	service := NewService(walker, gitManager, NewStatusParser(), presenter, logger)
	return service.Run(command.Context(), options)
}

// resolveOptions computes the effective scan roots. A positional argument wins
// over configured roots, which win over the working directory.
func (builder *CommandBuilder) resolveOptions(arguments []string) (CommandOptions, error) {
	configuration := builder.resolveConfiguration()

	var roots []string
	switch {
	case len(arguments) > 0:
		roots = []string{arguments[0]}
	case len(configuration.Roots) > 0:
		roots = pathutils.NewScanRootSanitizer().Sanitize(configuration.Roots)
	}

	if len(roots) == 0 {
		workingDirectory, workingDirectoryError := builder.resolveWorkingDirectory()
		if workingDirectoryError != nil {
			return CommandOptions{}, workingDirectoryError
		}
		roots = []string{workingDirectory}
	}

	if validationError := validateRoots(roots); validationError != nil {
		return CommandOptions{}, validationError
	}

	return CommandOptions{Roots: roots, BoxWidth: configuration.BoxWidth}, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	return configuration.sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveWorkingDirectory() (string, error) {
	if builder.WorkingDirectoryResolver != nil {
		return builder.WorkingDirectoryResolver()
	}
	return os.Getwd()
}

func validateRoots(roots []string) error {
	for _, root := range roots {
		rootInfo, statError := os.Stat(root)
		if statError != nil {
			return fmt.Errorf(unresolvableRootTemplateConstant, root, statError)
		}
		if !rootInfo.IsDir() {
			return fmt.Errorf(notDirectoryTemplateConstant, root)
		}
	}
	return nil
}
