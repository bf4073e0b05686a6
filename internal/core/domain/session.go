package domain

import "strings"

// sessionKeySeparator joins the user and organization IDs into a store key.
const sessionKeySeparator = ":"

// Session identifies the user/org pair that owns an authorization flow.
// It is used only as a composite key and is never mutated.
type Session struct {
	UserID string `json:"user_id"`
	OrgID  string `json:"org_id"`
}

// Validate checks that both identifiers are present and unambiguous.
func (s Session) Validate() error {
	if s.UserID == "" || s.OrgID == "" {
		return ErrInvalidInput
	}
	if strings.Contains(s.UserID, sessionKeySeparator) || strings.Contains(s.OrgID, sessionKeySeparator) {
		return ErrInvalidInput
	}
	return nil
}

// Key returns the composite store key for this session.
func (s Session) Key() string {
	return s.UserID + sessionKeySeparator + s.OrgID
}
