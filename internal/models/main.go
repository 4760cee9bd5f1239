// Package models defines the core data structures for site content and
// contact messages.
package models

// SiteTitleKey is the content key holding the public site title.
const SiteTitleKey = "site_title"

// DefaultSiteTitle is seeded into the content table when no title exists yet.
const DefaultSiteTitle = "Rodas Trial Consulting"

// TimestampLayout is the textual form of ContactMessage.CreatedAt (ISO-8601, UTC, milliseconds).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// MaxListedMessages caps how many contact messages a listing returns.
const MaxListedMessages = 200

// ContentEntry is a single key/value pair of editable site content.
type ContentEntry struct {
	// Key is the unique content identifier, e.g. "site_title".
	Key string `json:"key"`
	// Value is the stored text.
	Value string `json:"value"`
}

// ContactMessage is a visitor submission received through the contact form.
type ContactMessage struct {
	// ID is assigned by the store on insert and grows monotonically.
	ID int64 `json:"id"`
	// Name of the sender, trimmed.
	Name string `json:"name"`
	// Email of the sender, trimmed. Format is not validated.
	Email string `json:"email"`
	// Message body, trimmed.
	Message string `json:"message"`
	// CreatedAt is the insert time formatted with TimestampLayout.
	CreatedAt string `json:"created_at"`
}
