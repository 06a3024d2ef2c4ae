package events

import "time"

const PostingLifecycleTopic = "backoffice.recruitment.posting.v1"

const (
	PostingCreated = "posting_created"
	PostingUpdated = "posting_updated"
	PostingDeleted = "posting_deleted"
)

// PostingLifecycleEvent is published after a posting mutation commits.
// PostingID is zero for creations: the list store does not report the new id.
type PostingLifecycleEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	List           string    `json:"list"`
	PostingID      int       `json:"posting_id,omitempty"`
	OfferTitle     string    `json:"offre_title,omitempty"`
	City           string    `json:"city,omitempty"`
	Deadline       string    `json:"deadline,omitempty"`
	AttachmentName string    `json:"attachment_name,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
