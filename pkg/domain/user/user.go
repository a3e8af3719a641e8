// Package user holds the company directory model.
package user

import "strings"

// User is a company member as returned by the directory endpoint. Users
// are read-only from this tool's perspective.
type User struct {
	ID               int     `json:"id"`
	GlobalID         string  `json:"global_id"`
	FullName         string  `json:"full_name"`
	Title            *string `json:"title"`
	AvatarURL        *string `json:"avatar_url"`
	IsReviewer       bool    `json:"is_reviewer"`
	ReviewerID       *int    `json:"reviewer_id"`
	ReviewerFullName *string `json:"reviewer_full_name"`
	ReviewerGlobalID *string `json:"reviewer_global_id"`
	IsActive         bool    `json:"is_active"`
}

// Matches reports whether the user's name or title contains the term,
// case-insensitively.
func (u *User) Matches(term string) bool {
	t := strings.ToLower(term)
	if strings.Contains(strings.ToLower(u.FullName), t) {
		return true
	}
	return u.Title != nil && strings.Contains(strings.ToLower(*u.Title), t)
}
