package domain

import "fmt"

// EmailCategory is the AI-assigned email category.
type EmailCategory string

const (
	CategoryWork       EmailCategory = "work"
	CategoryPersonal   EmailCategory = "personal"
	CategorySpam       EmailCategory = "spam"
	CategoryNewsletter EmailCategory = "newsletter"
	CategoryUrgent     EmailCategory = "urgent"
	CategoryMeeting    EmailCategory = "meeting"
	CategoryInvoice    EmailCategory = "invoice"
	CategorySupport    EmailCategory = "support"
)

// Categories lists every category in canonical order. Report rendering
// iterates this slice so the breakdown section is deterministic.
var Categories = []EmailCategory{
	CategoryWork,
	CategoryPersonal,
	CategorySpam,
	CategoryNewsletter,
	CategoryUrgent,
	CategoryMeeting,
	CategoryInvoice,
	CategorySupport,
}

// Importance is the AI-assigned importance level.
type Importance string

const (
	ImportanceLow      Importance = "low"
	ImportanceMedium   Importance = "medium"
	ImportanceHigh     Importance = "high"
	ImportanceCritical Importance = "critical"
)

// High reports whether the importance belongs in the high-priority section.
func (i Importance) High() bool {
	return i == ImportanceHigh || i == ImportanceCritical
}

// SuggestedAction is the AI-suggested follow-up for an email.
type SuggestedAction string

const (
	ActionReply           SuggestedAction = "reply"
	ActionForward         SuggestedAction = "forward"
	ActionArchive         SuggestedAction = "archive"
	ActionDelete          SuggestedAction = "delete"
	ActionScheduleMeeting SuggestedAction = "schedule_meeting"
	ActionFollowUp        SuggestedAction = "follow_up"
	ActionNoAction        SuggestedAction = "no_action"
)

var validCategories = map[EmailCategory]bool{
	CategoryWork: true, CategoryPersonal: true, CategorySpam: true,
	CategoryNewsletter: true, CategoryUrgent: true, CategoryMeeting: true,
	CategoryInvoice: true, CategorySupport: true,
}

var validImportances = map[Importance]bool{
	ImportanceLow: true, ImportanceMedium: true,
	ImportanceHigh: true, ImportanceCritical: true,
}

var validActions = map[SuggestedAction]bool{
	ActionReply: true, ActionForward: true, ActionArchive: true,
	ActionDelete: true, ActionScheduleMeeting: true,
	ActionFollowUp: true, ActionNoAction: true,
}

// Email is one unread message as returned by the mail provider.
type Email struct {
	ID       string `json:"id"`
	Subject  string `json:"subject"`
	BodyText string `json:"body_text"`
	From     string `json:"from"`
	IsRead   bool   `json:"is_read"`
}

// Classification is the four-field structured judgment the LLM produces
// for one email.
type Classification struct {
	Category   EmailCategory   `json:"category"`
	Importance Importance      `json:"importance"`
	Action     SuggestedAction `json:"suggested_action"`
	Summary    string          `json:"summary"`
}

// Validate rejects classifications whose fields fall outside the enum
// domains. Anything the model returns that fails here is treated as
// "no classification", never passed through loosely typed.
func (c *Classification) Validate() error {
	if !validCategories[c.Category] {
		return fmt.Errorf("invalid category %q", c.Category)
	}
	if !validImportances[c.Importance] {
		return fmt.Errorf("invalid importance %q", c.Importance)
	}
	if !validActions[c.Action] {
		return fmt.Errorf("invalid suggested_action %q", c.Action)
	}
	return nil
}

// ClassifiedEmail pairs an email with its classification result.
// Classification is nil when the classifier failed for that email.
type ClassifiedEmail struct {
	Email          Email
	Classification *Classification
}

// Classified reports whether the email has a usable classification.
func (ce ClassifiedEmail) Classified() bool {
	return ce.Classification != nil
}
