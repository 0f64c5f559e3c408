package minutes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

func TestParseSummary(t *testing.T) {
	p := NewParser()

	completion := "Transcript: ... Summary: ignored\nSummary:   The final text.  "
	assert.Equal(t, "The final text.", p.ParseSummary(completion, 500))

	assert.Equal(t, "no marker", p.ParseSummary("  no marker ", 500))
	assert.Equal(t, "one two three", p.ParseSummary("Summary: one two three four five", 3))
}

func TestParseDecisions(t *testing.T) {
	p := NewParser()

	completion := "Key Decisions:\n1\nA\n\n  2  \nB\nC\nD\nE\nF"
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, p.ParseDecisions(completion))
	assert.Empty(t, p.ParseDecisions("Key Decisions:\n\n3\n"))
	assert.NotNil(t, p.ParseDecisions(""))
}

func TestParseActionItems(t *testing.T) {
	p := NewParser()

	var b strings.Builder
	b.WriteString("Action Items:\n")
	b.WriteString("no dash at all\n")
	for i := 0; i < 7; i++ {
		b.WriteString("- Task - Owner\n")
	}
	items := p.ParseActionItems(b.String())

	assert.Len(t, items, entities.MaxActionItems, "cap applies to valid items")
	assert.Equal(t, entities.ActionItem{Task: "Task", Assignee: "Owner", DueDate: "TBD", Priority: "Medium"}, items[0])

	items = p.ParseActionItems("Action Items: Review - Kim - Monday - Low - extra")
	assert.Equal(t, []entities.ActionItem{{Task: "Review", Assignee: "Kim", DueDate: "Monday", Priority: "Low"}}, items)

	items = p.ParseActionItems("Action Items:\nReview -  - \n")
	assert.Equal(t, []entities.ActionItem{{Task: "Review", Assignee: "Unassigned", DueDate: "TBD", Priority: "Medium"}}, items)
}

func TestParseNextSteps(t *testing.T) {
	p := NewParser()

	completion := "Next Steps:\n• one\n-two\n* three\n\nfour\nfive\nsix"
	assert.Equal(t, []string{"one", "two", "three", "four", "five"}, p.ParseNextSteps(completion))
}

func TestTruncateChars(t *testing.T) {
	assert.Equal(t, "abc", truncateChars("abc", 5))
	assert.Equal(t, "ab", truncateChars("abc", 2))
	assert.Equal(t, "hé", truncateChars("héllo", 2))
}
