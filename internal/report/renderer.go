package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/temirov/uncommitted/internal/gitrepo"
	"github.com/temirov/uncommitted/internal/scan"
)

const (
	defaultRenderWidthConstant = 80

	borderTopLeftConstant        = "╔"
	borderTopRightConstant       = "╗"
	borderBottomLeftConstant     = "╚"
	borderBottomRightConstant    = "╝"
	borderHorizontalConstant     = "═"
	borderVerticalConstant       = "║"
	borderSeparatorLeftConstant  = "╠"
	borderSeparatorRightConstant = "╣"

	scanStartMessageConstant      = "Scanning for git repositories with uncommitted changes..."
	noChangesMessageConstant      = "✓ No uncommitted changes found in any git repository!"
	bannerTitleConstant           = "  GIT UNCOMMITTED CHANGES SCANNER  "
	totalsHeadingTemplateConstant = "SUMMARY: %d repositories with uncommitted changes"

	branchLabelConstant        = "Branch:"
	remoteLabelConstant        = "Remote:"
	summaryLabelConstant       = "Summary:"
	unknownBranchLabelConstant = "(unknown)"
	upstreamArrowConstant      = " -> "

	remoteMissingLabelConstant    = "No remote configured"
	remoteGitHubLabelConstant     = "GitHub"
	remoteConfiguredLabelConstant = "Remote configured"
	pushedLabelConstant           = "(pushed)"
	notPushedLabelConstant        = "(not pushed)"

	aheadTemplateConstant  = "↑ %d ahead"
	behindTemplateConstant = "↓ %d behind"

	stagedSummaryTemplateConstant    = "%d staged "
	unstagedSummaryTemplateConstant  = "%d modified "
	untrackedSummaryTemplateConstant = "%d untracked"

	totalsStagedSuffixConstant    = " staged  |  "
	totalsUnstagedSuffixConstant  = " modified  |  "
	totalsUntrackedSuffixConstant = " untracked"

	fileColumnTitleConstant       = "File"
	statusColumnTitleConstant     = "Status"
	fileTableHeaderFormatConstant = "%-40s  %-20s"
	fileColumnFormatConstant      = "%-40s"
	statusColumnFormatConstant    = "%-20s"
	fileColumnWidthConstant       = 40
	fileNameTailConstant          = "..."

	fieldIndentConstant = "  "
	columnGapConstant   = "  "

	stagedModifiedLabelConstant = "modified (staged)"
	stagedAddedLabelConstant    = "new file (staged)"
	stagedDeletedLabelConstant  = "deleted (staged)"
	stagedRenamedLabelConstant  = "renamed (staged)"
	stagedFallbackLabelConstant = "staged"
	modifiedLabelConstant       = "modified"
	addedLabelConstant          = "new file"
	deletedLabelConstant        = "deleted"
	untrackedLabelConstant      = "untracked"
	renamedLabelConstant        = "renamed"
	unknownLabelConstant        = "unknown"
)

// ConsoleRenderer draws scan reports as framed boxes on a terminal. Styling
// degrades to plain text when the destination writer does not support colors.
type ConsoleRenderer struct {
	outputWriter io.Writer
	boxWidth     int
	palette      consolePalette
}

// NewConsoleRenderer constructs a ConsoleRenderer writing to the provided
// writer. A non-positive box width falls back to the default of 80 columns.
func NewConsoleRenderer(outputWriter io.Writer, boxWidth int) *ConsoleRenderer {
	resolvedWriter := outputWriter
	if resolvedWriter == nil {
		resolvedWriter = os.Stdout
	}

	resolvedWidth := boxWidth
	if resolvedWidth <= 0 {
		resolvedWidth = defaultRenderWidthConstant
	}

	styleRenderer := lipgloss.NewRenderer(resolvedWriter)

	return &ConsoleRenderer{
		outputWriter: resolvedWriter,
		boxWidth:     resolvedWidth,
		palette:      newConsolePalette(styleRenderer),
	}
}

// ShowScanStart announces the beginning of a scan.
func (renderer *ConsoleRenderer) ShowScanStart() {
	fmt.Fprintln(renderer.outputWriter, renderer.palette.announce.Render(scanStartMessageConstant))
}

// ShowReport renders every repository box followed by the aggregate totals.
// An empty report renders a single all-clear message instead.
func (renderer *ConsoleRenderer) ShowReport(scanReport scan.ScanReport) {
	if len(scanReport.Repositories) == 0 {
		fmt.Fprintf(renderer.outputWriter, "\n%s\n\n", renderer.palette.allClear.Render(noChangesMessageConstant))
		return
	}

	renderer.renderBanner()
	for _, repositoryStatus := range scanReport.Repositories {
		renderer.renderRepository(repositoryStatus)
	}
	renderer.renderTotals(scanReport)
}

func (renderer *ConsoleRenderer) renderBanner() {
	renderer.writeLine("")
	renderer.writeLine(renderer.horizontalRule(borderTopLeftConstant, borderTopRightConstant))
	renderer.writeLine(renderer.boxLine(renderer.centeredInterior(renderer.palette.banner.Render(bannerTitleConstant))))
	renderer.writeLine(renderer.horizontalRule(borderBottomLeftConstant, borderBottomRightConstant))
	renderer.writeLine("")
}

func (renderer *ConsoleRenderer) renderRepository(repositoryStatus scan.RepositoryStatus) {
	renderer.writeLine(renderer.horizontalRule(borderTopLeftConstant, borderTopRightConstant))
	renderer.writeLine(renderer.boxLine(" " + renderer.palette.path.Render(repositoryStatus.Path)))
	renderer.writeLine(renderer.horizontalRule(borderSeparatorLeftConstant, borderSeparatorRightConstant))

	renderer.writeLine(renderer.boxLine(renderer.branchInterior(repositoryStatus)))
	renderer.writeLine(renderer.boxLine(renderer.remoteInterior(repositoryStatus)))
	if repositoryStatus.AheadCount > 0 || repositoryStatus.BehindCount > 0 {
		renderer.writeLine(renderer.boxLine(renderer.divergenceInterior(repositoryStatus)))
	}
	renderer.writeLine(renderer.boxLine(renderer.summaryInterior(repositoryStatus)))

	renderer.writeLine(renderer.horizontalRule(borderSeparatorLeftConstant, borderSeparatorRightConstant))
	tableHeader := fmt.Sprintf(fileTableHeaderFormatConstant, fileColumnTitleConstant, statusColumnTitleConstant)
	renderer.writeLine(renderer.boxLine(fieldIndentConstant + renderer.palette.label.Render(tableHeader)))
	for _, fileChange := range repositoryStatus.Changes {
		renderer.writeLine(renderer.boxLine(renderer.fileRowInterior(fileChange)))
	}

	renderer.writeLine(renderer.horizontalRule(borderBottomLeftConstant, borderBottomRightConstant))
	renderer.writeLine("")
}

func (renderer *ConsoleRenderer) renderTotals(scanReport scan.ScanReport) {
	renderer.writeLine(renderer.horizontalRule(borderTopLeftConstant, borderTopRightConstant))
	totalsHeading := fmt.Sprintf(totalsHeadingTemplateConstant, len(scanReport.Repositories))
	renderer.writeLine(renderer.boxLine(renderer.centeredInterior(totalsHeading)))
	renderer.writeLine(renderer.horizontalRule(borderSeparatorLeftConstant, borderSeparatorRightConstant))

	countsInterior := fieldIndentConstant +
		renderer.palette.green.Render(strconv.Itoa(scanReport.TotalStaged)) + totalsStagedSuffixConstant +
		renderer.palette.yellow.Render(strconv.Itoa(scanReport.TotalUnstaged)) + totalsUnstagedSuffixConstant +
		renderer.palette.magenta.Render(strconv.Itoa(scanReport.TotalUntracked)) + totalsUntrackedSuffixConstant
	renderer.writeLine(renderer.boxLine(countsInterior))

	renderer.writeLine(renderer.horizontalRule(borderBottomLeftConstant, borderBottomRightConstant))
	renderer.writeLine("")
}

func (renderer *ConsoleRenderer) branchInterior(repositoryStatus scan.RepositoryStatus) string {
	branchDisplay := repositoryStatus.Branch
	if len(branchDisplay) == 0 {
		branchDisplay = unknownBranchLabelConstant
	}

	interior := fieldIndentConstant + renderer.palette.label.Render(branchLabelConstant) + " " + renderer.palette.green.Render(branchDisplay)
	if len(repositoryStatus.UpstreamBranch) > 0 {
		interior += upstreamArrowConstant + renderer.palette.blue.Render(repositoryStatus.UpstreamBranch)
	}
	return interior
}

func (renderer *ConsoleRenderer) remoteInterior(repositoryStatus scan.RepositoryStatus) string {
	interior := fieldIndentConstant + renderer.palette.label.Render(remoteLabelConstant) + " "
	if !repositoryStatus.HasRemote {
		return interior + renderer.palette.red.Render(remoteMissingLabelConstant)
	}

	if gitrepo.IsGitHubRemote(repositoryStatus.RemoteURL) {
		interior += renderer.palette.blue.Render(remoteGitHubLabelConstant)
	} else {
		interior += renderer.palette.green.Render(remoteConfiguredLabelConstant)
	}

	if repositoryStatus.IsPushed {
		interior += " " + renderer.palette.green.Render(pushedLabelConstant)
	} else {
		interior += " " + renderer.palette.yellow.Render(notPushedLabelConstant)
	}
	return interior
}

func (renderer *ConsoleRenderer) divergenceInterior(repositoryStatus scan.RepositoryStatus) string {
	interior := fieldIndentConstant
	if repositoryStatus.AheadCount > 0 {
		interior += renderer.palette.green.Render(fmt.Sprintf(aheadTemplateConstant, repositoryStatus.AheadCount))
	}
	if repositoryStatus.AheadCount > 0 && repositoryStatus.BehindCount > 0 {
		interior += columnGapConstant
	}
	if repositoryStatus.BehindCount > 0 {
		interior += renderer.palette.red.Render(fmt.Sprintf(behindTemplateConstant, repositoryStatus.BehindCount))
	}
	return interior
}

func (renderer *ConsoleRenderer) summaryInterior(repositoryStatus scan.RepositoryStatus) string {
	interior := fieldIndentConstant + renderer.palette.label.Render(summaryLabelConstant) + " "
	if repositoryStatus.StagedCount > 0 {
		interior += renderer.palette.green.Render(fmt.Sprintf(stagedSummaryTemplateConstant, repositoryStatus.StagedCount))
	}
	if repositoryStatus.UnstagedCount > 0 {
		interior += renderer.palette.yellow.Render(fmt.Sprintf(unstagedSummaryTemplateConstant, repositoryStatus.UnstagedCount))
	}
	if repositoryStatus.UntrackedCount > 0 {
		interior += renderer.palette.magenta.Render(fmt.Sprintf(untrackedSummaryTemplateConstant, repositoryStatus.UntrackedCount))
	}
	return interior
}

func (renderer *ConsoleRenderer) fileRowInterior(fileChange scan.FileChange) string {
	changeStyle, changeLabel := renderer.changePresentation(fileChange)
	displayName := truncate.StringWithTail(fileChange.Path, fileColumnWidthConstant, fileNameTailConstant)

	return fieldIndentConstant +
		changeStyle.Render(fmt.Sprintf(fileColumnFormatConstant, displayName)) +
		columnGapConstant +
		changeStyle.Render(fmt.Sprintf(statusColumnFormatConstant, changeLabel))
}

func (renderer *ConsoleRenderer) changePresentation(fileChange scan.FileChange) (lipgloss.Style, string) {
	if fileChange.Staged {
		switch fileChange.Code {
		case scan.ChangeCodeModified:
			return renderer.palette.green, stagedModifiedLabelConstant
		case scan.ChangeCodeAdded:
			return renderer.palette.green, stagedAddedLabelConstant
		case scan.ChangeCodeDeleted:
			return renderer.palette.green, stagedDeletedLabelConstant
		case scan.ChangeCodeRenamed:
			return renderer.palette.green, stagedRenamedLabelConstant
		default:
			return renderer.palette.green, stagedFallbackLabelConstant
		}
	}

	switch fileChange.Code {
	case scan.ChangeCodeModified:
		return renderer.palette.yellow, modifiedLabelConstant
	case scan.ChangeCodeAdded:
		return renderer.palette.green, addedLabelConstant
	case scan.ChangeCodeDeleted:
		return renderer.palette.red, deletedLabelConstant
	case scan.ChangeCodeUntracked:
		return renderer.palette.magenta, untrackedLabelConstant
	case scan.ChangeCodeRenamed:
		return renderer.palette.blue, renamedLabelConstant
	default:
		return renderer.palette.white, unknownLabelConstant
	}
}

func (renderer *ConsoleRenderer) boxLine(interior string) string {
	contentWidth := renderer.boxWidth - 2
	if paddingWidth := contentWidth - lipgloss.Width(interior); paddingWidth > 0 {
		interior += strings.Repeat(" ", paddingWidth)
	}

	verticalBorder := renderer.palette.frame.Render(borderVerticalConstant)
	return verticalBorder + interior + verticalBorder
}

func (renderer *ConsoleRenderer) horizontalRule(leftCorner string, rightCorner string) string {
	ruleWidth := renderer.boxWidth - 2
	if ruleWidth < 0 {
		ruleWidth = 0
	}
	return renderer.palette.frame.Render(leftCorner + strings.Repeat(borderHorizontalConstant, ruleWidth) + rightCorner)
}

func (renderer *ConsoleRenderer) centeredInterior(content string) string {
	leadingWidth := (renderer.boxWidth - lipgloss.Width(content) - 2) / 2
	if leadingWidth < 0 {
		leadingWidth = 0
	}
	return strings.Repeat(" ", leadingWidth) + content
}

func (renderer *ConsoleRenderer) writeLine(line string) {
	fmt.Fprintln(renderer.outputWriter, line)
}
