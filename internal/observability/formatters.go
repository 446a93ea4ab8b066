// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
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

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRequest outputs a human-readable summary of the optimization request.
func (p *Printer) PrintRequest(req *types.OptimizationRequest) {
	if req == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Target:    %s\n", req.TargetTitle))
	if req.Seniority != "" {
		sb.WriteString(fmt.Sprintf("Seniority: %s\n", req.Seniority))
	}
	if req.JobURL != "" {
		url := req.JobURL
		if len(url) > 45 {
			url = url[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Job URL:   %s\n", url))
	}
	if req.JobDescription != "" {
		sb.WriteString(fmt.Sprintf("Job text:  %d chars\n", len(req.JobDescription)))
	}
	sb.WriteString(fmt.Sprintf("Resume:    %d chars", len(req.ResumeText)))

	p.printBox("OPTIMIZATION REQUEST", sb.String())
}

// PrintResult outputs the optimization result: score, key changes, and
// suggested skills.
func (p *Printer) PrintResult(result *types.OptimizationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ATS Score: %d/100\n", result.ATSScore))

	if len(result.KeyChanges) > 0 {
		sb.WriteString("\nKey Changes:\n")
		count := min(len(result.KeyChanges), maxItemsToShow)
		for i := 0; i < count; i++ {
			change := result.KeyChanges[i]
			if len(change) > 50 {
				change = change[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", change))
		}
		if len(result.KeyChanges) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.KeyChanges)-maxItemsToShow))
		}
	}

	if len(result.SuggestedSkills) > 0 {
		sb.WriteString("\nSuggested Skills:\n")
		skills := strings.Join(result.SuggestedSkills, ", ")
		if len(skills) > 50 {
			skills = skills[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", skills))
	}

	p.printBox("OPTIMIZATION RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExtraction outputs a summary of the text extracted from an uploaded
// resume file.
func (p *Printer) PrintExtraction(fileName string, text string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:  %s\n", fileName))
	sb.WriteString(fmt.Sprintf("Chars: %d\n", len(text)))
	sb.WriteString(fmt.Sprintf("Lines: %d", strings.Count(text, "\n")+1))

	p.printBox("EXTRACTED RESUME TEXT", sb.String())
}
