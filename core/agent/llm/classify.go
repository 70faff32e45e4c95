package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"digest_worker/core/domain"
)

const maxBodyChars = 2000

const classifyPromptFormat = `You are an email classification AI. Analyze the email and respond with JSON only.

Categories: work, personal, spam, newsletter, urgent, meeting, invoice, support
Importance: low, medium, high, critical
Suggested actions: reply, forward, archive, delete, schedule_meeting, follow_up, no_action

Respond with this exact JSON format and nothing else:
{
  "category": "one of the categories",
  "importance": "one of the importance levels",
  "suggested_action": "one of the suggested actions",
  "summary": "brief 1-2 sentence summary"
}

Subject: %s

Body:
%s`

// Classify builds the classification prompt for one email and parses the
// completion strictly against the expected JSON shape. The model always
// receives non-empty input: blank subject or body is replaced with a
// sentinel before prompting.
func (c *Client) Classify(ctx context.Context, subject, body string) (*domain.Classification, error) {
	resp, err := c.Complete(ctx, buildClassifyPrompt(subject, body))
	if err != nil {
		return nil, err
	}

	return parseClassification(resp)
}

func buildClassifyPrompt(subject, body string) string {
	if strings.TrimSpace(subject) == "" {
		subject = "No Subject"
	}
	if strings.TrimSpace(body) == "" {
		body = "No Content"
	}
	return fmt.Sprintf(classifyPromptFormat, subject, truncateBody(body, maxBodyChars))
}

// parseClassification validates the completion text against the expected
// field set and enum domains. Anything malformed is an error, never a
// loosely-typed pass-through.
func parseClassification(resp string) (*domain.Classification, error) {
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	resp = strings.TrimSpace(resp)

	var result domain.Classification
	if err := json.Unmarshal([]byte(resp), &result); err != nil {
		return nil, fmt.Errorf("failed to parse classification response: %w", err)
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("classification outside expected domain: %w", err)
	}

	return &result, nil
}

func truncateBody(body string, maxLen int) string {
	if len(body) <= maxLen {
		return body
	}
	// Back off to a rune boundary so the prompt stays valid UTF-8.
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut] + "..."
}
