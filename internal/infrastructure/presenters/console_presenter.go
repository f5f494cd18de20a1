package presenters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iancoleman/orderedmap"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
)

const (
	colorRed   = lipgloss.Color("1")
	colorGreen = lipgloss.Color("2")

	unknownVersion = "unknown"
	upToDate       = "All dependencies are up to date!"
	noRequirements = "No version requirements found"
)

// ConsolePresenter renders classified dependencies as a table or as JSON.
type ConsolePresenter struct {
	allowed lipgloss.Style
	blocked lipgloss.Style
}

// NewConsolePresenter creates a presenter whose colour profile is detected
// from stdout, so pipes and NO_COLOR get plain text.
func NewConsolePresenter() *ConsolePresenter {
	return NewStyledConsolePresenter(lipgloss.NewRenderer(os.Stdout))
}

// NewPlainConsolePresenter creates a presenter that never emits colour codes.
func NewPlainConsolePresenter() *ConsolePresenter {
	renderer := lipgloss.NewRenderer(os.Stdout)
	renderer.SetColorProfile(termenv.Ascii)
	return NewStyledConsolePresenter(renderer)
}

// NewStyledConsolePresenter creates a presenter drawing with the given renderer.
func NewStyledConsolePresenter(renderer *lipgloss.Renderer) *ConsolePresenter {
	return &ConsolePresenter{
		allowed: renderer.NewStyle().Foreground(colorGreen),
		blocked: renderer.NewStyle().Foreground(colorRed),
	}
}

// FormatTable renders the outdated dependencies (or all of them when showAll
// is set) as a pipe table, followed by a footnote for blocked updates.
func (p *ConsolePresenter) FormatTable(dependencies []entities.Dependency, showAll bool) string {
	rows := selectRows(dependencies, showAll)
	if len(rows) == 0 {
		return upToDate
	}

	headers := []string{"Package", "Current", "Latest"}
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	cells := make([][]string, 0, len(rows))
	for _, dep := range rows {
		row := []string{dep.Name, versionText(dep.CurrentVersion), versionText(dep.LatestVersion)}
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
		cells = append(cells, row)
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, tableLine(headers, widths))
	separator := make([]string, len(widths))
	for i, width := range widths {
		separator[i] = strings.Repeat("-", width+2)
	}
	lines = append(lines, "|"+strings.Join(separator, "|")+"|")

	for i, dep := range rows {
		row := cells[i]
		padded := []string{
			runewidth.FillRight(row[0], widths[0]),
			runewidth.FillRight(row[1], widths[1]),
			p.colorLatest(dep, runewidth.FillRight(row[2], widths[2])),
		}
		lines = append(lines, "| "+strings.Join(padded, " | ")+" |")
	}

	blocked := make([]string, 0)
	for _, dep := range rows {
		if !dep.IsOutdated() || dep.CanAutoUpdate() ||
			dep.VersionRequirement == nil || len(dep.RequirementSources) == 0 {
			continue
		}
		sources := make([]string, 0, len(dep.RequirementSources))
		for _, source := range dep.RequirementSources {
			sources = append(sources, SourceName(source))
		}
		blocked = append(blocked, fmt.Sprintf(
			"  %s: %s (%s)", dep.Name, dep.VersionRequirement, strings.Join(sources, ", "),
		))
	}
	if len(blocked) > 0 {
		lines = append(lines, "", "Blocked updates:")
		lines = append(lines, blocked...)
	}

	return strings.Join(lines, "\n")
}

// FormatJSON renders the same selection as FormatTable as a JSON array whose
// objects have sorted keys.
func (p *ConsolePresenter) FormatJSON(dependencies []entities.Dependency, showAll bool) (string, error) {
	rows := selectRows(dependencies, showAll)
	objects := make([]*orderedmap.OrderedMap, 0, len(rows))
	for _, dep := range rows {
		object := orderedmap.New()
		object.SetEscapeHTML(false)
		object.Set("package", dep.Name)
		object.Set("currentVersion", versionOrNil(dep.CurrentVersion))
		object.Set("latestVersion", versionOrNil(dep.LatestVersion))
		object.Set("repositoryURL", dep.RepositoryURL)
		if showAll {
			object.Set("outdated", dep.IsOutdated())
		}
		if dep.IsOutdated() {
			object.Set("updateKind", dep.UpdateKind())
			if dep.VersionRequirement != nil {
				object.Set("canAutoUpdate", dep.CanAutoUpdate())
			}
		}
		object.SortKeys(sort.Strings)
		objects = append(objects, object)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(objects); err != nil {
		return "", fmt.Errorf("failed to encode dependencies as JSON: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// FormatRequirements lists merged manifest declarations and any conflicting
// declarations that were ignored.
func (p *ConsolePresenter) FormatRequirements(
	declarations []entities.ManifestDependency,
	conflicts []entities.RequirementConflict,
) string {
	if len(declarations) == 0 {
		return noRequirements
	}

	width := 0
	for _, decl := range declarations {
		width = max(width, runewidth.StringWidth(decl.Identity()))
	}

	lines := make([]string, 0, len(declarations))
	for _, decl := range declarations {
		lines = append(lines, fmt.Sprintf(
			"%s  %s (%s)",
			runewidth.FillRight(decl.Identity(), width), decl.Requirement, sourceNames(decl.SourcePaths),
		))
	}

	if len(conflicts) > 0 {
		lines = append(lines, "", "Conflicting requirements:")
		for _, conflict := range conflicts {
			lines = append(lines, fmt.Sprintf(
				"  %s: using %s (%s)",
				conflict.Identity, conflict.Kept.Requirement, sourceNames(conflict.Kept.SourcePaths),
			))
			for _, ignored := range conflict.Ignored {
				lines = append(lines, fmt.Sprintf(
					"    ignored %s (%s)", ignored.Requirement, sourceNames(ignored.SourcePaths),
				))
			}
		}
	}

	return strings.Join(lines, "\n")
}

// SourceName is how a manifest path is shown to the user: the package
// directory for a Package.swift, the file or bundle name otherwise.
func SourceName(path string) string {
	name := filepath.Base(path)
	if name == "Package.swift" {
		return filepath.Base(filepath.Dir(path))
	}
	return name
}

func (p *ConsolePresenter) colorLatest(dep entities.Dependency, text string) string {
	if !dep.IsOutdated() || dep.VersionRequirement == nil {
		return text
	}
	if dep.CanAutoUpdate() {
		return p.allowed.Render(text)
	}
	return p.blocked.Render(text)
}

func selectRows(dependencies []entities.Dependency, showAll bool) []entities.Dependency {
	if showAll {
		return dependencies
	}
	rows := make([]entities.Dependency, 0, len(dependencies))
	for _, dep := range dependencies {
		if dep.IsOutdated() {
			rows = append(rows, dep)
		}
	}
	return rows
}

func tableLine(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = runewidth.FillRight(cell, widths[i])
	}
	return "| " + strings.Join(padded, " | ") + " |"
}

func sourceNames(paths []string) string {
	names := make([]string, 0, len(paths))
	for _, path := range paths {
		names = append(names, SourceName(path))
	}
	return strings.Join(names, ", ")
}

func versionText(version *entities.SemanticVersion) string {
	if version == nil {
		return unknownVersion
	}
	return version.String()
}

func versionOrNil(version *entities.SemanticVersion) any {
	if version == nil {
		return nil
	}
	return version.String()
}
