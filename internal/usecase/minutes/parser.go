package minutes

import (
	"strings"
	"unicode"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// Parser turns raw model completions into minutes fields
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseSummary keeps the text after the last "Summary:" marker, capped at
// maxWords words
func (p *Parser) ParseSummary(completion string, maxWords int) string {
	return truncateWords(afterMarker(completion, markerSummary), maxWords)
}

// ParseDecisions drops blank lines and stray list numbers
func (p *Parser) ParseDecisions(completion string) []string {
	decisions := make([]string, 0, entities.MaxKeyDecisions)
	for _, line := range strings.Split(afterMarker(completion, markerDecisions), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isDigits(line) {
			continue
		}
		decisions = append(decisions, line)
		if len(decisions) == entities.MaxKeyDecisions {
			break
		}
	}
	return decisions
}

// ParseActionItems reads "Task - Assignee - Due Date - Priority" lines.
// Leading bullets are stripped before splitting; lines with fewer than two
// fields are skipped.
func (p *Parser) ParseActionItems(completion string) []entities.ActionItem {
	items := make([]entities.ActionItem, 0, entities.MaxActionItems)
	for _, line := range strings.Split(afterMarker(completion, markerActionItems), "\n") {
		line = stripBullet(line)
		if line == "" || !strings.Contains(line, "-") {
			continue
		}

		parts := strings.Split(line, "-")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 2 || parts[0] == "" {
			continue
		}

		field := func(i int) string {
			if i < len(parts) {
				return parts[i]
			}
			return ""
		}
		items = append(items, entities.NewActionItem(parts[0], field(1), field(2), field(3)))
		if len(items) == entities.MaxActionItems {
			break
		}
	}
	return items
}

// ParseNextSteps strips bullet characters from each non-blank line
func (p *Parser) ParseNextSteps(completion string) []string {
	steps := make([]string, 0, entities.MaxNextSteps)
	for _, line := range strings.Split(afterMarker(completion, markerNextSteps), "\n") {
		line = stripBullet(line)
		if line == "" {
			continue
		}
		steps = append(steps, line)
		if len(steps) == entities.MaxNextSteps {
			break
		}
	}
	return steps
}

// afterMarker returns the trimmed text after the last marker, or the whole
// completion when the marker is absent
func afterMarker(completion, marker string) string {
	if idx := strings.LastIndex(completion, marker); idx != -1 {
		completion = completion[idx+len(marker):]
	}
	return strings.TrimSpace(completion)
}

func stripBullet(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "•-*")
	return strings.TrimSpace(line)
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// truncateWords keeps the first n whitespace-separated words. Text within
// the limit is returned unchanged so line breaks survive.
func truncateWords(s string, n int) string {
	if n <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ")
}
