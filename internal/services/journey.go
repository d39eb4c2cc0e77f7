package services

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/storage"
)

// JourneyTracker maintains the capped trail of clicked labels per
// (business, flow, contact). Updates for the same key are serialized
// through a per-key mutex so redelivered webhooks cannot race the
// read-modify-write of the journey row.
type JourneyTracker struct {
	store     storage.Store
	publisher JourneyPublisher

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewJourneyTracker creates a new journey tracker
func NewJourneyTracker(store storage.Store, publisher JourneyPublisher) *JourneyTracker {
	return &JourneyTracker{
		store:     store,
		publisher: publisher,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (t *JourneyTracker) keyLock(key string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	lock, exists := t.locks[key]
	if !exists {
		lock = &sync.Mutex{}
		t.locks[key] = lock
	}
	return lock
}

// RecordClick appends the clicked label (original casing, repeats
// included) to the contact's trail, creating the row on first click,
// then publishes the running summary downstream. Publication failures
// never block the pipeline.
func (t *JourneyTracker) RecordClick(businessID, flowID uint, phone, label string) (*models.JourneyState, error) {
	key := fmt.Sprintf("%d:%d:%s", businessID, flowID, phone)
	lock := t.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	journey, err := t.store.GetJourney(businessID, flowID, phone)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		journey = &models.JourneyState{
			BusinessID:   businessID,
			FlowID:       flowID,
			ContactPhone: phone,
		}
	}

	journey.AppendLabel(label)
	if err := t.store.SaveJourney(journey); err != nil {
		return nil, err
	}

	if t.publisher != nil {
		t.publisher.Publish(&JourneyEvent{
			BusinessID:   businessID,
			FlowID:       flowID,
			ContactPhone: phone,
			Label:        label,
			Trail:        journey.Trail,
			ClickCount:   journey.ClickCount,
			OccurredAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}

	log.Printf("🧭 Journey %s: %s (%d clicks)", key, journey.Trail, journey.ClickCount)
	return journey, nil
}
