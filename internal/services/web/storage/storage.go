// Package storage declares persistence for in-progress application drafts.
//
// Drafts are transient: each is kept for a bounded time after its last
// change and is discarded once the visitor submits or resets the form.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/educonsult/site/internal/lead"
)

// DraftStore keeps drafts keyed by their opaque id.
type DraftStore interface {
	// GetDraft returns the draft for id. Missing and expired drafts report
	// false without an error.
	GetDraft(ctx context.Context, id string) (lead.Draft, bool, error)
	// PutDraft stores draft under draft.ID for ttl. A zero ttl keeps it
	// until deleted.
	PutDraft(ctx context.Context, draft lead.Draft, ttl time.Duration) error
	DeleteDraft(ctx context.Context, id string) error
	Close() error
}

// EncodeDraft serializes a draft for stores that keep opaque payloads.
func EncodeDraft(draft lead.Draft) ([]byte, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("encode draft %s: %w", draft.ID, err)
	}
	return payload, nil
}

// DecodeDraft restores a draft written by EncodeDraft.
func DecodeDraft(payload []byte) (lead.Draft, error) {
	var draft lead.Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return lead.Draft{}, fmt.Errorf("decode draft: %w", err)
	}
	draft.Step = draft.Step.Clamp()
	return draft, nil
}
