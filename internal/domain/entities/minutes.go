package entities

// List caps applied to every minutes record
const (
	MaxKeyDecisions = 5
	MaxActionItems  = 5
	MaxNextSteps    = 5
)

// Action item field defaults
const (
	DefaultAssignee = "Unassigned"
	DefaultDueDate  = "TBD"
	DefaultPriority = "Medium"
)

// MeetingInfo is the header block of a minutes record
type MeetingInfo struct {
	Title        string   `json:"title" yaml:"title"`
	Date         string   `json:"date" yaml:"date"`
	Participants []string `json:"participants" yaml:"participants"`
	Duration     string   `json:"duration" yaml:"duration"`
}

// ActionItem is one follow-up task
type ActionItem struct {
	Task     string `json:"task" yaml:"task"`
	Assignee string `json:"assignee" yaml:"assignee"`
	DueDate  string `json:"due_date" yaml:"due_date"`
	Priority string `json:"priority" yaml:"priority"`
}

// NewActionItem fills blank fields with their defaults
func NewActionItem(task, assignee, dueDate, priority string) ActionItem {
	if assignee == "" {
		assignee = DefaultAssignee
	}
	if dueDate == "" {
		dueDate = DefaultDueDate
	}
	if priority == "" {
		priority = DefaultPriority
	}
	return ActionItem{Task: task, Assignee: assignee, DueDate: dueDate, Priority: priority}
}

// MinutesRecord is the structured result of one meeting. Field order is the
// serialization order.
type MinutesRecord struct {
	MeetingInfo    MeetingInfo  `json:"meeting_info" yaml:"meeting_info"`
	Summary        string       `json:"summary" yaml:"summary"`
	KeyDecisions   []string     `json:"key_decisions" yaml:"key_decisions"`
	ActionItems    []ActionItem `json:"action_items" yaml:"action_items"`
	NextSteps      []string     `json:"next_steps" yaml:"next_steps"`
	FullTranscript string       `json:"full_transcript" yaml:"full_transcript"`
}

// Normalize guarantees every list is present and within its cap, and that
// participants is never nil
func (m *MinutesRecord) Normalize() {
	if m.MeetingInfo.Participants == nil {
		m.MeetingInfo.Participants = []string{}
	}
	m.KeyDecisions = capStrings(m.KeyDecisions, MaxKeyDecisions)
	m.NextSteps = capStrings(m.NextSteps, MaxNextSteps)
	if m.ActionItems == nil {
		m.ActionItems = []ActionItem{}
	}
	if len(m.ActionItems) > MaxActionItems {
		m.ActionItems = m.ActionItems[:MaxActionItems]
	}
}

func capStrings(in []string, limit int) []string {
	if in == nil {
		return []string{}
	}
	if len(in) > limit {
		return in[:limit]
	}
	return in
}
