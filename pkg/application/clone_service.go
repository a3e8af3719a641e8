package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/darylhandley/15five-utils/pkg/domain"
	"github.com/darylhandley/15five-utils/pkg/domain/objective"
)

// CloneService turns a source objective into a create-objective form
// submission owned by another user and linked as a child of the source.
type CloneService struct {
	gateway domain.Gateway
	audit   domain.AuditLogger
}

func NewCloneService(gateway domain.Gateway, audit domain.AuditLogger) *CloneService {
	return &CloneService{gateway: gateway, audit: audit}
}

// BuildForm reproduces the create-objective browser form field for
// field. The long description is always empty: the read API does not
// expose it, so a faithful copy is impossible and the loss is accepted.
// The csrfmiddlewaretoken field is an authentication artifact and is
// appended by the transport at submission time.
func (s *CloneService) BuildForm(source *objective.Objective, targetUserID int) (url.Values, error) {
	startTS, err := objective.FormDate(source.StartDate())
	if err != nil {
		return nil, err
	}
	endTS, err := objective.FormDate(source.EndDate())
	if err != nil {
		return nil, err
	}

	form := url.Values{}

	// Formset management: the form framework requires the declared
	// count to match the number of key-result rows exactly.
	form.Set("key-result-TOTAL_FORMS", strconv.Itoa(len(source.KeyResults)))
	form.Set("key-result-INITIAL_FORMS", "0")
	form.Set("key-result-MIN_NUM_FORMS", "0")
	form.Set("key-result-MAX_NUM_FORMS", "25")

	form.Set("description", source.Description)
	form.Set("long_description", "")
	form.Set("user", strconv.Itoa(targetUserID))

	form.Set("scope_option", "company")
	form.Set("scope", "company-wide")
	form.Set("group_type", "")
	form.Set("group", "")

	// Linking the clone under its source is what makes progress sync
	// possible later.
	form.Set("parent", strconv.Itoa(source.ID))
	form.Set("is_progress_aligned", "")

	form.Set("period", "custom")
	form.Set("start_ts", startTS)
	form.Set("end_ts", endTS)
	form.Set("visibility", "public")

	for _, tag := range source.Tags {
		form.Add("tags", strconv.Itoa(tag.ID))
	}

	for i, kr := range source.KeyResults {
		prefix := fmt.Sprintf("key-result-%d-", i)
		form.Set(prefix+"description", kr.Description)
		// Blank id so the server treats the row as a new key result.
		form.Set(prefix+"id", "")
		form.Set(prefix+"integration_link", "")
		form.Set(prefix+"sort_order", strconv.Itoa(kr.SortOrder))
		form.Set(prefix+"type", kr.Type)
		currency := ""
		if kr.Symbol != nil {
			currency = *kr.Symbol
		}
		form.Set(prefix+"currency", currency)
		form.Set(prefix+"start_value", kr.StartValue.String())
		form.Set(prefix+"target_value", kr.TargetValue.String())
		form.Set(prefix+"owner", strconv.Itoa(targetUserID))
	}

	return form, nil
}

// Clone creates a copy of the source objective owned by the target user
// and returns the new objective's identifier. There is no deduplication
// here: cloning twice creates two objectives. Duplicate checks are the
// caller's decision via FindDuplicates.
func (s *CloneService) Clone(ctx context.Context, source *objective.Objective, targetUserID int) (int, error) {
	form, err := s.BuildForm(source, targetUserID)
	if err != nil {
		return 0, err
	}

	newID, err := s.gateway.CreateObjective(ctx, form)
	if err != nil {
		if errors.Is(err, objective.ErrCreatedIDUnknown) {
			// The objective was created; record it so the operator can
			// reconcile manually.
			_ = s.audit.Log("objective.clone.unconfirmed", "operator", map[string]interface{}{
				"source_id":   source.ID,
				"target_user": targetUserID,
			})
		}
		return 0, err
	}

	_ = s.audit.Log("objective.clone", "operator", map[string]interface{}{
		"source_id":   source.ID,
		"target_user": targetUserID,
		"new_id":      newID,
	})

	return newID, nil
}

// FindDuplicates returns the target user's existing objectives whose
// title matches the source's, compared case-insensitively. Pure read;
// the caller decides whether to proceed.
func (s *CloneService) FindDuplicates(ctx context.Context, source *objective.Objective, targetUserID int) ([]objective.Objective, error) {
	existing, err := s.gateway.ObjectivesByUser(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	var duplicates []objective.Objective
	for _, o := range existing {
		if strings.EqualFold(o.Description, source.Description) {
			duplicates = append(duplicates, o)
		}
	}
	return duplicates, nil
}

// BuildPreview renders the clone summary shown before confirmation. It
// is pure and repeatable: no network calls, no side effects.
func (s *CloneService) BuildPreview(source *objective.Objective, targetUserName string, targetUserID int) string {
	var b strings.Builder
	rule := strings.Repeat("═", 80)

	b.WriteString(rule + "\n")
	b.WriteString("CLONE OBJECTIVE PREVIEW\n")
	b.WriteString(rule + "\n")

	fmt.Fprintf(&b, "Title:  %q\n", source.Description)
	fmt.Fprintf(&b, "From:   %s → %s (%d)\n", source.User.Name, targetUserName, targetUserID)
	fmt.Fprintf(&b, "Period: %s → %s\n", source.StartDate(), source.EndDate())

	if len(source.Tags) > 0 {
		fmt.Fprintf(&b, "Tags:   %s\n", source.TagNames())
	}

	fmt.Fprintf(&b, "\nKey Results (%d):\n", len(source.KeyResults))
	for i, kr := range source.KeyResults {
		fmt.Fprintf(&b, "  %d. %q (%s → %s)\n", i+1, kr.Description, kr.StartValueDisplay, kr.TargetValueDisplay)
		fmt.Fprintf(&b, "     Owner: %s\n", targetUserName)
	}

	b.WriteString(rule + "\n")
	b.WriteString("Clone this objective? (y/N): ")

	return b.String()
}
