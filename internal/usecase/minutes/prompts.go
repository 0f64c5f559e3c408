package minutes

import (
	"fmt"

	"github.com/johnquangdev/meeting-minutes/pkg/ai"
)

// Extraction names, also used as metric and log labels
const (
	ExtractionSummary     = "summary"
	ExtractionDecisions   = "key_decisions"
	ExtractionActionItems = "action_items"
	ExtractionNextSteps   = "next_steps"
)

// Response markers. Each prompt ends with its marker so the model continues
// after it; parsing keeps only the text after the last occurrence.
const (
	markerSummary     = "Summary:"
	markerDecisions   = "Key Decisions:"
	markerActionItems = "Action Items:"
	markerNextSteps   = "Next Steps:"
)

// Transcript prefix lengths in characters
const (
	summaryPrefixChars    = 2000
	extractionPrefixChars = 1500
)

type extraction struct {
	name   string
	prompt string
	opts   ai.GenerateOptions
}

func summaryExtraction(transcript string, maxWords int) extraction {
	prompt := fmt.Sprintf(`Please analyze the following meeting transcript and provide a concise summary in %d words or less.
Focus on the main topics discussed, key points raised, and overall meeting outcomes.

Transcript:
%s

%s`, maxWords, truncateChars(transcript, summaryPrefixChars), markerSummary)

	return extraction{
		name:   ExtractionSummary,
		prompt: prompt,
		opts:   ai.GenerateOptions{Temperature: 0.7, MaxTokens: maxWords},
	}
}

func decisionsExtraction(transcript string) extraction {
	prompt := fmt.Sprintf(`Analyze this meeting transcript and extract the key decisions that were made.
Return only the decisions as a numbered list.

Transcript:
%s

%s`, truncateChars(transcript, extractionPrefixChars), markerDecisions)

	return extraction{
		name:   ExtractionDecisions,
		prompt: prompt,
		opts:   ai.GenerateOptions{Temperature: 0.3, MaxTokens: 200},
	}
}

func actionItemsExtraction(transcript string) extraction {
	prompt := fmt.Sprintf(`Analyze this meeting transcript and extract action items with assignees and due dates.
Format as: "Task - Assignee - Due Date - Priority"

Transcript:
%s

%s`, truncateChars(transcript, extractionPrefixChars), markerActionItems)

	return extraction{
		name:   ExtractionActionItems,
		prompt: prompt,
		opts:   ai.GenerateOptions{Temperature: 0.3, MaxTokens: 300},
	}
}

func nextStepsExtraction(transcript string) extraction {
	prompt := fmt.Sprintf(`Based on this meeting transcript, what are the logical next steps and follow-up actions?
List them as bullet points.

Transcript:
%s

%s`, truncateChars(transcript, extractionPrefixChars), markerNextSteps)

	return extraction{
		name:   ExtractionNextSteps,
		prompt: prompt,
		opts:   ai.GenerateOptions{Temperature: 0.5, MaxTokens: 200},
	}
}

// truncateChars keeps at most n runes
func truncateChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
