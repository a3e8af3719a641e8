// Package objective holds the objective/key-result domain model as the
// 15Five API exposes it.
package objective

import (
	"fmt"
	"strings"
	"time"
)

// ObjectiveUser is the abbreviated user reference embedded in objectives
// and key results.
type ObjectiveUser struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// Tag is a label attached to an objective. Tags are propagated by ID when
// cloning.
type Tag struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Archived bool   `json:"archived"`
}

// KeyResult is a measurable sub-target of an objective. Key results are
// correlated across objectives purely by Description equality; there is no
// identifier-based link between a parent's and a child's key results.
type KeyResult struct {
	ID                  int           `json:"id"`
	Description         string        `json:"description"`
	SortOrder           int           `json:"sort_order"`
	Type                string        `json:"type"`
	StartValue          Value         `json:"start_value"`
	TargetValue         Value         `json:"target_value"`
	CurrentValue        Value         `json:"current_value"`
	CurrentValueDisplay string        `json:"current_value_display"`
	StartValueDisplay   string        `json:"start_value_display"`
	TargetValueDisplay  string        `json:"target_value_display"`
	Symbol              *string       `json:"symbol"`
	Owner               ObjectiveUser `json:"owner"`
}

// Objective is a goal record owned by a user for a time period.
type Objective struct {
	ID         int           `json:"id"`
	User       ObjectiveUser `json:"user"`
	Description string       `json:"description"`
	StartTS    string        `json:"start_ts"`
	EndTS      string        `json:"end_ts"`
	Color      string        `json:"color"`
	Percentage string        `json:"percentage"`
	Scope      string        `json:"scope"`
	IsActive   bool          `json:"is_active"`
	IsArchived bool          `json:"is_archived"`
	KeyResults []KeyResult   `json:"key_results"`
	Tags       []Tag         `json:"tags"`
	Parent     *int          `json:"parent"`
}

// Page is one page of the paginated objectives listing. A non-nil Next
// means more pages remain.
type Page struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  []Objective `json:"results"`
}

// StartDate returns the start timestamp as a YYYY-MM-DD calendar date.
func (o *Objective) StartDate() string {
	return calendarDate(o.StartTS)
}

// EndDate returns the end timestamp as a YYYY-MM-DD calendar date.
func (o *Objective) EndDate() string {
	return calendarDate(o.EndTS)
}

// TagNames returns the tag names joined for display.
func (o *Objective) TagNames() string {
	names := make([]string, 0, len(o.Tags))
	for _, t := range o.Tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

// HasParent reports whether the objective records a parent link.
func (o *Objective) HasParent() bool {
	return o.Parent != nil
}

// calendarDate reduces an ISO-8601 timestamp to its date part. The API
// sometimes returns bare dates and sometimes full offset timestamps.
func calendarDate(ts string) string {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Format("2006-01-02")
	}
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// FormDate reformats a YYYY-MM-DD date into the "MMM DD, YYYY" textual
// form the create-objective web form expects. Malformed input is an
// error; a silently defaulted date would submit a wrong period.
func FormDate(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid objective date %q: %w", date, err)
	}
	return t.Format("Jan 02, 2006"), nil
}
