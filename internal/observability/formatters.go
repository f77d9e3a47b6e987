// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/student-profile/internal/autofill"
	"github.com/jonathan/student-profile/internal/clienterr"
	"github.com/jonathan/student-profile/internal/types"
	"github.com/jonathan/student-profile/internal/wizard"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the number of cells in the progress bar
	barWidth = 30
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// ProgressBar renders pct (0-100) as a fixed-width bar followed by the rounded percentage.
func ProgressBar(pct float64) string {
	pct = max(0, min(100, pct))
	filled := int(pct/100*barWidth + 0.5)
	return fmt.Sprintf("[%s%s] %3.0f%%", strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled), pct)
}

// PrintSnapshot outputs the wizard position, progress, upload status and the gate result
// of every step.
func (p *Printer) PrintSnapshot(snap wizard.Snapshot) {
	var sb strings.Builder

	if snap.Completed {
		sb.WriteString("Status:   submitted\n")
		sb.WriteString(fmt.Sprintf("Profile:  %s\n", snap.ProfileID))
		p.printBox("PROFILE WIZARD", strings.TrimSuffix(sb.String(), "\n"))
		return
	}

	sb.WriteString(fmt.Sprintf("Step:     %d/%d (%s)\n", snap.Step, wizard.LastStep, snap.Step))
	sb.WriteString(fmt.Sprintf("Progress: %s\n", ProgressBar(snap.Progress)))
	sb.WriteString(fmt.Sprintf("Upload:   %s", snap.Upload.Status))
	if snap.Upload.Message != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", snap.Upload.Message))
	}
	sb.WriteString("\n\n")

	for step := wizard.FirstStep; step <= wizard.LastStep; step++ {
		err := wizard.CheckStep(step, snap.Draft)
		if err == nil {
			sb.WriteString(fmt.Sprintf("  ✓ %s\n", step))
			continue
		}
		sb.WriteString(fmt.Sprintf("  ✗ %s: %s\n", step, missingFields(err)))
	}

	p.printBox("PROFILE WIZARD", strings.TrimSuffix(sb.String(), "\n"))
}

func missingFields(err error) string {
	var ve *clienterr.ValidationError
	if errors.As(err, &ve) && len(ve.Missing) > 0 {
		return "missing " + strings.Join(ve.Missing, ", ")
	}
	return err.Error()
}

// PrintDraft outputs a human-readable summary of the three profile sections.
func (p *Printer) PrintDraft(d types.ProfileDraft) {
	var sb strings.Builder

	name := strings.TrimSpace(d.Personal.FirstName + " " + d.Personal.LastName)
	sb.WriteString(fmt.Sprintf("Name:        %s\n", orDash(name)))
	sb.WriteString(fmt.Sprintf("Email:       %s\n", orDash(d.Personal.Email)))
	sb.WriteString(fmt.Sprintf("Location:    %s\n", orDash(d.Personal.Location)))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Level:       %s\n", orDash(string(d.Education.CurrentLevel))))
	sb.WriteString(fmt.Sprintf("Institution: %s\n", orDash(d.Education.Institution)))
	if d.Education.CGPA != nil {
		sb.WriteString(fmt.Sprintf("CGPA:        %.2f\n", *d.Education.CGPA))
	}
	writeList(&sb, "Achievements", d.Education.Achievements)

	writeSkills(&sb, "Technical", d.Skills.Technical)
	writeSkills(&sb, "Soft", d.Skills.Soft)
	langs := make([]string, 0, len(d.Skills.Languages))
	for _, l := range d.Skills.Languages {
		langs = append(langs, withQualifier(l.Language, string(l.Proficiency)))
	}
	writeList(&sb, "Languages", langs)

	p.printBox("PROFILE DRAFT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintParsedProfile outputs what the resume parser extracted, before it is merged.
func (p *Printer) PrintParsedProfile(parsed *autofill.ParsedProfile) {
	if parsed == nil {
		return
	}

	var sb strings.Builder
	if pi := parsed.Personal; pi != nil {
		sb.WriteString(fmt.Sprintf("Name:        %s\n", orDash(pi.Name.String())))
		sb.WriteString(fmt.Sprintf("Email:       %s\n", orDash(pi.Email.String())))
		sb.WriteString("\n")
	}
	if ed := parsed.Education; ed != nil {
		sb.WriteString(fmt.Sprintf("Level:       %s\n", orDash(ed.CurrentLevel.String())))
		sb.WriteString(fmt.Sprintf("Institution: %s\n", orDash(ed.Institution.String())))
		sb.WriteString("\n")
	}

	skills := make([]string, 0, len(parsed.TechnicalSkills)+len(parsed.SoftSkills))
	for _, s := range append(append([]autofill.ParsedSkill{}, parsed.TechnicalSkills...), parsed.SoftSkills...) {
		skills = append(skills, withQualifier(s.Name.String(), s.Level.String()))
	}
	writeList(&sb, "Skills", skills)

	langs := make([]string, 0, len(parsed.Languages))
	for _, l := range parsed.Languages {
		langs = append(langs, withQualifier(l.Name.String(), l.Proficiency.String()))
	}
	writeList(&sb, "Languages", langs)

	content := strings.TrimSuffix(sb.String(), "\n")
	if content == "" {
		content = "Nothing could be extracted from the resume"
	}
	p.printBox("PARSED RESUME", content)
}

// PrintSubmitted outputs the ID assigned to a submitted profile.
func (p *Printer) PrintSubmitted(profileID string) {
	p.printBox("✅ PROFILE SUBMITTED", fmt.Sprintf("Profile ID: %s", profileID))
}

func writeSkills(sb *strings.Builder, label string, entries []types.SkillEntry) {
	items := make([]string, 0, len(entries))
	for _, e := range entries {
		items = append(items, withQualifier(e.Skill, string(e.Level)))
	}
	writeList(sb, label, items)
}

// writeList prints up to maxItemsToShow bullets under label. Empty lists are skipped.
func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", orDash(items[i])))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

func withQualifier(name, qualifier string) string {
	if qualifier == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, qualifier)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
