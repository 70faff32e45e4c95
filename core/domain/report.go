package domain

import (
	"fmt"
	"strings"
	"time"
)

// Report is the aggregate of one digest run: category tally, the
// high-priority subset and the full listing, all in fetch order.
// Built once, rendered, then discarded; nothing here is persisted.
type Report struct {
	GeneratedAt       time.Time
	CategoryBreakdown map[EmailCategory]int
	HighPriority      []ClassifiedEmail
	All               []ClassifiedEmail
}

// BuildReport folds ordered (email, classification) pairs into a Report.
// Pairs without a classification are excluded from the tally and both
// listings but still count toward the processed total upstream.
func BuildReport(pairs []ClassifiedEmail, now time.Time) *Report {
	r := &Report{
		GeneratedAt:       now,
		CategoryBreakdown: make(map[EmailCategory]int),
	}
	for _, p := range pairs {
		if !p.Classified() {
			continue
		}
		r.CategoryBreakdown[p.Classification.Category]++
		if p.Classification.Importance.High() {
			r.HighPriority = append(r.HighPriority, p)
		}
		r.All = append(r.All, p)
	}
	return r
}

// ClassifiedCount returns the number of successfully classified emails.
func (r *Report) ClassifiedCount() int {
	return len(r.All)
}

// Render produces the report text. The layout is fixed; tests pin it.
func (r *Report) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Email Summary Report - %s\n\n", r.GeneratedAt.Format("2006-01-02"))

	b.WriteString("Category Breakdown:\n")
	for _, cat := range Categories {
		if n := r.CategoryBreakdown[cat]; n > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", cat, n)
		}
	}

	if len(r.HighPriority) > 0 {
		b.WriteString("\nHigh Priority Emails:\n")
		for _, p := range r.HighPriority {
			c := p.Classification
			fmt.Fprintf(&b, "- Subject: %s\n", p.Email.Subject)
			fmt.Fprintf(&b, "  Importance: %s\n", c.Importance)
			fmt.Fprintf(&b, "  From: %s\n", p.Email.From)
			fmt.Fprintf(&b, "  Action: %s\n", c.Action)
			fmt.Fprintf(&b, "  Summary: %s\n", c.Summary)
		}
	}

	b.WriteString("\nAll Email Summaries:\n")
	for _, p := range r.All {
		c := p.Classification
		fmt.Fprintf(&b, "- Subject: %s\n", p.Email.Subject)
		fmt.Fprintf(&b, "  From: %s\n", p.Email.From)
		fmt.Fprintf(&b, "  Category: %s\n", c.Category)
		fmt.Fprintf(&b, "  Importance: %s\n", c.Importance)
		fmt.Fprintf(&b, "  Action: %s\n", c.Action)
		fmt.Fprintf(&b, "  Summary: %s\n", c.Summary)
	}

	return b.String()
}
