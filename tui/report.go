// Package tui renders install and uninstall reports for the terminal.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dsaleh/appimage-installer/internal/installer"
	"github.com/dsaleh/appimage-installer/internal/registration"
)

var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	stylePending = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleHeader  = lipgloss.NewStyle().Bold(true)
)

// Progress renders a step as it starts.
func Progress(msg installer.ProgressMsg) string {
	var line string
	switch msg.Step {
	case installer.StepExtracting:
		line = "Extracting files..."
	case installer.StepCopyingBinary:
		line = "Copying AppImage to: " + msg.Path
	case installer.StepCopyingIcon:
		line = "Copying icon to: " + msg.Path
	case installer.StepWritingEntry:
		line = "Creating menu entry: " + msg.Path
	default:
		line = fmt.Sprintf("%s: %s", msg.Step, msg.Path)
	}
	return stylePending.Render("  · " + line)
}

// Warning renders a non-fatal problem.
func Warning(msg string) string {
	return styleWarning.Render("Warning: " + msg)
}

// Error renders a fatal error.
func Error(err error) string {
	return styleError.Render("Error: " + err.Error())
}

// InstallReport renders the outcome of a successful install.
func InstallReport(res *installer.InstallResult) string {
	var sb strings.Builder
	if res.Updated {
		sb.WriteString(styleWarning.Render("Updated existing file: "+filepath.Base(res.Binary)) + "\n")
	}
	for _, w := range res.Warnings {
		sb.WriteString(Warning(w) + "\n")
	}
	sb.WriteString("\n" + styleDone.Render("✓ Installation complete!") + "\n")
	fmt.Fprintf(&sb, "Check your application menu for '%s'.\n", res.Name)
	return sb.String()
}

// UninstallReport renders what an uninstall removed.
func UninstallReport(res *installer.UninstallResult) string {
	var sb strings.Builder
	if res.NotInstalled {
		fmt.Fprintf(&sb, "'%s' is not installed in %s\n", filepath.Base(res.Binary), filepath.Dir(res.Binary))
		return sb.String()
	}
	for _, w := range res.Warnings {
		sb.WriteString(Warning(w) + "\n")
	}
	if len(res.Removed) == 0 {
		sb.WriteString(stylePending.Render("Nothing was removed.") + "\n")
		return sb.String()
	}
	sb.WriteString("\n" + styleDone.Render("✓ Uninstallation complete! Removed:") + "\n")
	for _, path := range res.Removed {
		sb.WriteString("  - " + path + "\n")
	}
	return sb.String()
}

// List renders installed registrations as a table. Paths under home are
// shortened to ~.
func List(regs []registration.Registration, home string) string {
	if len(regs) == 0 {
		return stylePending.Render("No AppImages installed.") + "\n"
	}
	short := func(p string) string {
		switch {
		case p == "":
			return "-"
		case home != "" && strings.HasPrefix(p, home+string(filepath.Separator)):
			return "~" + strings.TrimPrefix(p, home)
		default:
			return p
		}
	}

	rows := make([][]string, 0, len(regs))
	for _, r := range regs {
		name := r.Name
		if name == "" {
			name = "-"
		}
		rows = append(rows, []string{filepath.Base(r.Binary), name, short(r.Entry), short(r.Icon)})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(stylePending).
		Headers("APPIMAGE", "NAME", "ENTRY", "ICON").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			if row >= 0 && row < len(rows) && col == 2 && rows[row][col] == "-" {
				return styleWarning.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render() + "\n"
}
