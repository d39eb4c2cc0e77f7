package services

import (
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/storage"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/utils"
)

// ButtonMatch is a resolved click: the stable button index and the link
// the engine should traverse.
type ButtonMatch struct {
	Index int
	Link  *models.ButtonLink
}

// ButtonMatcher maps a clicked label to a button index using a
// three-tier degrading strategy: the button bundle snapshotted on the
// originating send, then the step's live links, then a single-link
// fallback. Labels compare case-insensitively with whitespace runs
// collapsed.
type ButtonMatcher struct {
	store storage.Store
}

// NewButtonMatcher creates a new button matcher
func NewButtonMatcher(store storage.Store) *ButtonMatcher {
	return &ButtonMatcher{store: store}
}

// Match resolves the clicked label against the origin's step. A false
// return means the click is unattributable; callers log and skip.
func (m *ButtonMatcher) Match(origin *Origin, clickedLabel string) (*ButtonMatch, bool, error) {
	// Tier 1: bundle snapshotted at send time. Survives later graph
	// edits, so it is the primary source.
	for _, snap := range origin.Buttons {
		if utils.LabelsEqual(snap.Label, clickedLabel) {
			link := linkFromSnapshot(origin, snap)
			return m.authoritative(origin, snap.Index, link), true, nil
		}
	}

	// Tier 2: the step's current links.
	links, err := m.store.GetLinks(origin.StepID)
	if err != nil {
		return nil, false, err
	}
	for i := range links {
		if utils.LabelsEqual(links[i].Label, clickedLabel) {
			return m.authoritative(origin, links[i].ButtonIndex, &links[i]), true, nil
		}
	}

	// Tier 3: a step with exactly one link gets it regardless of label,
	// for steps whose label metadata drifted since the send.
	if len(links) == 1 {
		return m.authoritative(origin, links[0].ButtonIndex, &links[0]), true, nil
	}

	return nil, false, nil
}

// authoritative re-fetches the link by (flow, step, index); when that
// exact row is gone the matched object itself is used.
func (m *ButtonMatcher) authoritative(origin *Origin, index int, matched *models.ButtonLink) *ButtonMatch {
	link, err := m.store.GetLink(origin.FlowID, origin.StepID, index)
	if err != nil {
		// Missing row or store trouble both degrade to the matched
		// object; the click still resolves.
		link = matched
	}
	return &ButtonMatch{Index: index, Link: link}
}

func linkFromSnapshot(origin *Origin, snap models.ButtonSnapshot) *models.ButtonLink {
	return &models.ButtonLink{
		FlowID:      origin.FlowID,
		StepID:      origin.StepID,
		ButtonIndex: snap.Index,
		Label:       snap.Label,
		Kind:        snap.Kind,
		Value:       snap.Value,
		NextStepID:  snap.NextStepID,
	}
}
