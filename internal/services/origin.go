package services

import (
	"errors"
	"fmt"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/storage"
)

// Origin is the recovered context of the outbound message a click
// replies to: which business/flow/step produced it, the button bundle
// snapshotted on it, and the sender it went out on.
type Origin struct {
	BusinessID uint
	FlowID     uint
	StepID     uint

	Message *models.OutboundMessage
	Buttons []models.ButtonSnapshot

	// Sender hint for the reply, so chains stay on the account the
	// conversation started on.
	Provider string
	SenderID string

	RunID        string
	FromCampaign bool
}

// OriginResolver attributes a click's context id to the send that
// produced the clicked message.
type OriginResolver struct {
	store storage.Store
}

// NewOriginResolver creates a new origin resolver
func NewOriginResolver(store storage.Store) *OriginResolver {
	return &OriginResolver{store: store}
}

// Resolve looks up the outbound message the click replies to. It tries
// a flow-originated send first, then a campaign-originated one whose
// campaign binds a flow (entering at the flow's first step). A
// storage.ErrNotFound return means the click cannot be attributed;
// callers log and skip.
func (r *OriginResolver) Resolve(contextID string) (*Origin, error) {
	msg, err := r.store.GetMessageByProviderID(contextID)
	if err != nil {
		return nil, err
	}

	origin := &Origin{
		BusinessID: msg.BusinessID,
		Message:    msg,
		Buttons:    models.ParseButtons(msg.ButtonsJSON),
		Provider:   msg.Provider,
		SenderID:   msg.SenderID,
		RunID:      msg.RunID,
	}

	// Flow-originated sends carry the step context directly.
	if msg.FlowID != nil && msg.StepID != nil {
		origin.FlowID = *msg.FlowID
		origin.StepID = *msg.StepID
		return origin, nil
	}

	// Campaign-originated sends enter the campaign's bound flow at its
	// first step.
	if msg.CampaignID == nil {
		return nil, storage.ErrNotFound
	}
	campaign, err := r.store.GetCampaign(*msg.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign.FlowID == nil {
		return nil, storage.ErrNotFound
	}
	entry, err := r.store.GetEntryStep(*campaign.FlowID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("resolving entry step of flow %d: %w", *campaign.FlowID, err)
	}

	origin.FlowID = *campaign.FlowID
	origin.StepID = entry.ID
	origin.FromCampaign = true
	if campaign.Provider != "" {
		origin.Provider = campaign.Provider
		origin.SenderID = campaign.SenderID
	}
	return origin, nil
}
