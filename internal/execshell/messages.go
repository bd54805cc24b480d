package execshell

import (
	"fmt"
	"strings"
)

// MessageSeverity ranks lifecycle messages for console presentation.
type MessageSeverity int

// Severity levels ordered from least to most prominent.
const (
	MessageSeverityDebug MessageSeverity = iota
	MessageSeverityInfo
	MessageSeverityWarning
	MessageSeverityError
)

// gitQuery identifies which repository question a git invocation answers.
type gitQuery int

const (
	gitQueryGeneric gitQuery = iota
	gitQueryCurrentBranch
	gitQueryUpstreamBranch
	gitQueryRevisionProbe
	gitQueryDivergence
	gitQueryRemoteLookup
	gitQueryStatusListing
	gitQueryIgnoreProbe
)

// routineSeverity picks the level for start, success, and absence messages.
// Revision and ignore probes fire on every repository visit and stay at debug.
func (query gitQuery) routineSeverity() MessageSeverity {
	if query == gitQueryRevisionProbe || query == gitQueryIgnoreProbe {
		return MessageSeverityDebug
	}
	return MessageSeverityInfo
}

const (
	revParseSubcommandConstant    = "rev-parse"
	revListSubcommandConstant     = "rev-list"
	remoteSubcommandConstant      = "remote"
	statusSubcommandConstant      = "status"
	checkIgnoreSubcommandConstant = "check-ignore"
	remoteGetURLArgumentConstant  = "get-url"
	abbrevRefFlagConstant         = "--abbrev-ref"
	symbolicFullNameFlagConstant  = "--symbolic-full-name"
	upstreamReferenceConstant     = "@{u}"
	headReferenceConstant         = "HEAD"
)

const (
	currentBranchStartTemplateConstant       = "Identifying current branch in %s"
	currentBranchResultTemplateConstant      = "Current branch in %s is %s"
	detachedHeadTemplateConstant             = "%s is in a detached HEAD state"
	currentBranchFailedTemplateConstant      = "Failed to identify current branch in %s (exit code %d%s)"
	currentBranchUnavailableTemplateConstant = "Unable to identify current branch in %s: %s"
	upstreamStartTemplateConstant            = "Checking upstream branch configuration in %s"
	upstreamResultTemplateConstant           = "Upstream branch in %s is %s"
	upstreamMissingTemplateConstant          = "No upstream branch configured in %s"
	upstreamUnavailableTemplateConstant      = "Unable to check upstream branch configuration in %s: %s"
	revisionStartTemplateConstant            = "Resolving %s in %s"
	revisionResultTemplateConstant           = "%s in %s resolved to %s"
	revisionMissingTemplateConstant          = "%s in %s did not resolve to a revision"
	revisionUnavailableTemplateConstant      = "Unable to resolve %s in %s: %s"
	divergenceStartTemplateConstant          = "Counting commits ahead of and behind upstream in %s"
	divergenceResultTemplateConstant         = "Counted upstream divergence for %s"
	divergenceFailedTemplateConstant         = "Failed to count upstream divergence in %s (exit code %d%s)"
	divergenceUnavailableTemplateConstant    = "Unable to count upstream divergence in %s: %s"
	remoteStartTemplateConstant              = "Checking %s remote for %s"
	remoteResultTemplateConstant             = "%s remote for %s points to %s"
	remoteMissingTemplateConstant            = "No %s remote configured for %s"
	remoteUnavailableTemplateConstant        = "Unable to read %s remote for %s: %s"
	statusStartTemplateConstant              = "Reviewing working tree status in %s"
	statusResultTemplateConstant             = "Collected working tree status for %s"
	statusFailedTemplateConstant             = "Failed to review working tree status in %s (exit code %d%s)"
	statusUnavailableTemplateConstant        = "Unable to review working tree status in %s: %s"
	ignoreStartTemplateConstant              = "Checking whether %s is ignored in %s"
	ignoredResultTemplateConstant            = "%s is ignored in %s"
	notIgnoredResultTemplateConstant         = "%s is not ignored in %s"
	ignoreUnavailableTemplateConstant        = "Unable to check ignore rules for %s in %s: %s"
)

const (
	fallbackStartTemplateConstant   = "Running %s"
	fallbackSuccessTemplateConstant = "Completed %s"
	fallbackFailureTemplateConstant = "%s failed with exit code %d%s"
	fallbackErrorTemplateConstant   = "%s failed: %s"
)

const (
	locationSuffixTemplateConstant    = " (in %s)"
	errorDetailSuffixTemplateConstant = ": %s"
	argumentSeparatorConstant         = " "
	flagPrefixConstant                = "-"
	currentDirectoryLabelConstant     = "current directory"
	unknownFailureLabelConstant       = "unknown error"
	unknownValueLabelConstant         = "unknown"
	emptyStringConstant               = ""
)

// CommandMessageFormatter renders human-readable messages for command
// lifecycle events. Each command is classified into the git query it answers
// and every lifecycle stage renders that query's wording.
type CommandMessageFormatter struct{}

// DescribeStart formats the message announcing a command together with its severity.
func (formatter CommandMessageFormatter) DescribeStart(command ShellCommand) (string, MessageSeverity) {
	query := classifyGitCommand(command)
	return formatter.startMessage(query, command), query.routineSeverity()
}

// DescribeCompletion formats the message for a finished command together with
// its severity. Non-zero exits of absence probes (upstream lookup, revision
// verification, ignore checks, remote lookup) describe the absent state
// instead of a failure.
func (formatter CommandMessageFormatter) DescribeCompletion(command ShellCommand, result ExecutionResult) (string, MessageSeverity) {
	query := classifyGitCommand(command)
	if result.ExitCode == 0 {
		return formatter.successMessage(query, command, result), query.routineSeverity()
	}
	if absenceText, absent := formatter.absenceMessage(query, command); absent {
		return absenceText, query.routineSeverity()
	}
	return formatter.failureMessage(query, command, result), MessageSeverityWarning
}

// DescribeExecutionFailure formats the message for a command that never ran.
func (formatter CommandMessageFormatter) DescribeExecutionFailure(command ShellCommand, failure error) (string, MessageSeverity) {
	return formatter.executionFailureMessage(classifyGitCommand(command), command, failure), MessageSeverityError
}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.startMessage(classifyGitCommand(command), command)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.successMessage(classifyGitCommand(command), command, result)
}

// BuildFailureMessage formats the message describing a command that returned a
// non-zero exit code. Absence probes render their absent state.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	query := classifyGitCommand(command)
	if absenceText, absent := formatter.absenceMessage(query, command); absent {
		return absenceText
	}
	return formatter.failureMessage(query, command, result)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.executionFailureMessage(classifyGitCommand(command), command, failure)
}

// classifyGitCommand maps a shell command onto the scanner query it performs.
// Unrecognized invocations and non-git executables render generically.
func classifyGitCommand(command ShellCommand) gitQuery {
	arguments := command.Details.Arguments
	if command.Name != CommandGit || len(arguments) == 0 {
		return gitQueryGeneric
	}
	switch strings.TrimSpace(arguments[0]) {
	case revParseSubcommandConstant:
		if hasArgument(arguments, symbolicFullNameFlagConstant) && hasArgument(arguments, upstreamReferenceConstant) {
			return gitQueryUpstreamBranch
		}
		if hasArgument(arguments, abbrevRefFlagConstant) {
			return gitQueryCurrentBranch
		}
		return gitQueryRevisionProbe
	case revListSubcommandConstant:
		return gitQueryDivergence
	case remoteSubcommandConstant:
		if len(arguments) > 1 && strings.TrimSpace(arguments[1]) == remoteGetURLArgumentConstant {
			return gitQueryRemoteLookup
		}
		return gitQueryGeneric
	case statusSubcommandConstant:
		return gitQueryStatusListing
	case checkIgnoreSubcommandConstant:
		return gitQueryIgnoreProbe
	default:
		return gitQueryGeneric
	}
}

func (formatter CommandMessageFormatter) startMessage(query gitQuery, command ShellCommand) string {
	location := commandLocation(command)
	switch query {
	case gitQueryCurrentBranch:
		return fmt.Sprintf(currentBranchStartTemplateConstant, location)
	case gitQueryUpstreamBranch:
		return fmt.Sprintf(upstreamStartTemplateConstant, location)
	case gitQueryRevisionProbe:
		return fmt.Sprintf(revisionStartTemplateConstant, revisionReference(command.Details.Arguments), location)
	case gitQueryDivergence:
		return fmt.Sprintf(divergenceStartTemplateConstant, location)
	case gitQueryRemoteLookup:
		return fmt.Sprintf(remoteStartTemplateConstant, remoteName(command.Details.Arguments), location)
	case gitQueryStatusListing:
		return fmt.Sprintf(statusStartTemplateConstant, location)
	case gitQueryIgnoreProbe:
		return fmt.Sprintf(ignoreStartTemplateConstant, ignoreTarget(command.Details.Arguments), location)
	default:
		return fmt.Sprintf(fallbackStartTemplateConstant, commandLabel(command))
	}
}

func (formatter CommandMessageFormatter) successMessage(query gitQuery, command ShellCommand, result ExecutionResult) string {
	location := commandLocation(command)
	output := strings.TrimSpace(result.StandardOutput)
	switch query {
	case gitQueryCurrentBranch:
		if len(output) == 0 || strings.EqualFold(output, headReferenceConstant) {
			return fmt.Sprintf(detachedHeadTemplateConstant, location)
		}
		return fmt.Sprintf(currentBranchResultTemplateConstant, location, output)
	case gitQueryUpstreamBranch:
		if len(output) == 0 {
			return fmt.Sprintf(upstreamMissingTemplateConstant, location)
		}
		return fmt.Sprintf(upstreamResultTemplateConstant, location, output)
	case gitQueryRevisionProbe:
		reference := revisionReference(command.Details.Arguments)
		if len(output) == 0 {
			return fmt.Sprintf(revisionMissingTemplateConstant, reference, location)
		}
		return fmt.Sprintf(revisionResultTemplateConstant, reference, location, output)
	case gitQueryDivergence:
		return fmt.Sprintf(divergenceResultTemplateConstant, location)
	case gitQueryRemoteLookup:
		return fmt.Sprintf(remoteResultTemplateConstant, remoteName(command.Details.Arguments), location, valueOrUnknown(output))
	case gitQueryStatusListing:
		return fmt.Sprintf(statusResultTemplateConstant, location)
	case gitQueryIgnoreProbe:
		return fmt.Sprintf(ignoredResultTemplateConstant, ignoreTarget(command.Details.Arguments), location)
	default:
		return fmt.Sprintf(fallbackSuccessTemplateConstant, commandLabel(command))
	}
}

// absenceMessage renders the informational text for queries whose non-zero
// exit reports an absent state rather than a failure.
func (formatter CommandMessageFormatter) absenceMessage(query gitQuery, command ShellCommand) (string, bool) {
	location := commandLocation(command)
	switch query {
	case gitQueryUpstreamBranch:
		return fmt.Sprintf(upstreamMissingTemplateConstant, location), true
	case gitQueryRevisionProbe:
		return fmt.Sprintf(revisionMissingTemplateConstant, revisionReference(command.Details.Arguments), location), true
	case gitQueryRemoteLookup:
		return fmt.Sprintf(remoteMissingTemplateConstant, remoteName(command.Details.Arguments), location), true
	case gitQueryIgnoreProbe:
		return fmt.Sprintf(notIgnoredResultTemplateConstant, ignoreTarget(command.Details.Arguments), location), true
	default:
		return emptyStringConstant, false
	}
}

func (formatter CommandMessageFormatter) failureMessage(query gitQuery, command ShellCommand, result ExecutionResult) string {
	location := commandLocation(command)
	detail := errorOutputSuffix(result.StandardError)
	switch query {
	case gitQueryCurrentBranch:
		return fmt.Sprintf(currentBranchFailedTemplateConstant, location, result.ExitCode, detail)
	case gitQueryDivergence:
		return fmt.Sprintf(divergenceFailedTemplateConstant, location, result.ExitCode, detail)
	case gitQueryStatusListing:
		return fmt.Sprintf(statusFailedTemplateConstant, location, result.ExitCode, detail)
	default:
		return fmt.Sprintf(fallbackFailureTemplateConstant, commandLabel(command), result.ExitCode, detail)
	}
}

func (formatter CommandMessageFormatter) executionFailureMessage(query gitQuery, command ShellCommand, failure error) string {
	location := commandLocation(command)
	cause := describeCause(failure)
	switch query {
	case gitQueryCurrentBranch:
		return fmt.Sprintf(currentBranchUnavailableTemplateConstant, location, cause)
	case gitQueryUpstreamBranch:
		return fmt.Sprintf(upstreamUnavailableTemplateConstant, location, cause)
	case gitQueryRevisionProbe:
		return fmt.Sprintf(revisionUnavailableTemplateConstant, revisionReference(command.Details.Arguments), location, cause)
	case gitQueryDivergence:
		return fmt.Sprintf(divergenceUnavailableTemplateConstant, location, cause)
	case gitQueryRemoteLookup:
		return fmt.Sprintf(remoteUnavailableTemplateConstant, remoteName(command.Details.Arguments), location, cause)
	case gitQueryStatusListing:
		return fmt.Sprintf(statusUnavailableTemplateConstant, location, cause)
	case gitQueryIgnoreProbe:
		return fmt.Sprintf(ignoreUnavailableTemplateConstant, ignoreTarget(command.Details.Arguments), location, cause)
	default:
		return fmt.Sprintf(fallbackErrorTemplateConstant, commandLabel(command), cause)
	}
}

// commandLocation names the directory a command runs in, falling back to a
// readable label when the command inherits the current directory.
func commandLocation(command ShellCommand) string {
	location := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(location) == 0 {
		return currentDirectoryLabelConstant
	}
	return location
}

func commandLabel(command ShellCommand) string {
	label := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		label += argumentSeparatorConstant + strings.Join(command.Details.Arguments, argumentSeparatorConstant)
	}
	if directory := strings.TrimSpace(command.Details.WorkingDirectory); len(directory) > 0 {
		label += fmt.Sprintf(locationSuffixTemplateConstant, directory)
	}
	return label
}

func errorOutputSuffix(standardError string) string {
	trimmed := strings.TrimSpace(standardError)
	if len(trimmed) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(errorDetailSuffixTemplateConstant, trimmed)
}

func describeCause(failure error) string {
	if failure == nil {
		return unknownFailureLabelConstant
	}
	return failure.Error()
}

// revisionReference reads the revision being resolved, which rev-parse takes
// as its final argument.
func revisionReference(arguments []string) string {
	if len(arguments) == 0 {
		return unknownValueLabelConstant
	}
	return valueOrUnknown(arguments[len(arguments)-1])
}

// remoteName reads the remote a get-url invocation queries.
func remoteName(arguments []string) string {
	if len(arguments) < 3 {
		return unknownValueLabelConstant
	}
	return valueOrUnknown(arguments[2])
}

// ignoreTarget reads the path a check-ignore invocation probes, skipping the
// flags that precede it.
func ignoreTarget(arguments []string) string {
	if len(arguments) < 2 {
		return unknownValueLabelConstant
	}
	for _, argument := range arguments[1:] {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) > 0 && !strings.HasPrefix(trimmed, flagPrefixConstant) {
			return trimmed
		}
	}
	return unknownValueLabelConstant
}

func valueOrUnknown(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return unknownValueLabelConstant
	}
	return trimmed
}

func hasArgument(arguments []string, wanted string) bool {
	for _, candidate := range arguments {
		if strings.TrimSpace(candidate) == wanted {
			return true
		}
	}
	return false
}
