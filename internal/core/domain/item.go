package domain

import "time"

// ItemType identifies the kind of CRM object an item was normalized from
type ItemType string

const (
	ItemTypeContact ItemType = "contact"
	ItemTypeCompany ItemType = "company"
)

// Item is the provider-agnostic representation of a CRM object, produced
// fresh on every fetch and never persisted.
type Item struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Type             ItemType  `json:"type"`
	CreationTime     time.Time `json:"creation_time"`
	LastModifiedTime time.Time `json:"last_modified_time"`
	URL              string    `json:"url,omitempty"`
}

// Record is a raw provider object before normalization. Property names
// and values are provider-specific; timestamps are already parsed.
type Record struct {
	ID         string
	Properties map[string]string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Property returns a named property or the empty string.
func (r Record) Property(name string) string {
	return r.Properties[name]
}
