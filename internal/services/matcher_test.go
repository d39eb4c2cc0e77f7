package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
)

func (f *fixture) origin(t *testing.T) *Origin {
	t.Helper()
	origin, err := NewOriginResolver(f.store).Resolve(fixtureContextID)
	require.NoError(t, err)
	return origin
}

func TestMatchBundleTier(t *testing.T) {
	f := newFixture(t)
	origin := f.origin(t)

	cases := []string{"Yes", "yes", "YES", "  yes  ", "Y\tES"}
	// The last one must not match: whitespace collapses, it does not
	// vanish inside words.
	for i, clicked := range cases[:4] {
		match, ok, err := NewButtonMatcher(f.store).Match(origin, clicked)
		require.NoError(t, err, "case %d", i)
		require.True(t, ok, "case %d: %q", i, clicked)
		assert.Equal(t, 0, match.Index)
		require.NotNil(t, match.Link)
		assert.Equal(t, "Yes", match.Link.Label)
	}

	_, ok, err := NewButtonMatcher(f.store).Match(origin, "Y\tES")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchBundleSurvivesGraphEdit(t *testing.T) {
	f := newFixture(t)
	origin := f.origin(t)

	// The graph drifts after the send: the step's links are renamed.
	f.linkYes.Label = "Absolutely"
	f.store.AddLink(f.linkYes)

	match, ok, err := NewButtonMatcher(f.store).Match(origin, "yes")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, match.Index)
	// The authoritative link by (flow, step, index) is the renamed row.
	assert.Equal(t, "Absolutely", match.Link.Label)
}

func TestMatchGraphTierWithoutBundle(t *testing.T) {
	f := newFixture(t)
	origin := f.origin(t)
	origin.Buttons = nil

	match, ok, err := NewButtonMatcher(f.store).Match(origin, "buy  now")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, match.Index)
	assert.Equal(t, "Buy Now", match.Link.Label)
}

func TestMatchSingleLinkFallback(t *testing.T) {
	f := newFixture(t)

	// A step with exactly one link takes any label.
	solo := &models.FlowStep{FlowID: f.flow.ID, OrderIndex: 2, TemplateName: "welcome"}
	soloFlow := &models.FlowDefinition{
		BusinessID: fixtureBusinessID,
		Name:       "solo",
		IsActive:   true,
		Steps:      []models.FlowStep{*solo},
	}
	require.NoError(t, f.store.CreateFlow(soloFlow))
	loaded, err := f.store.GetFlow(soloFlow.ID)
	require.NoError(t, err)
	soloStep := loaded.Steps[0]

	link := &models.ButtonLink{
		FlowID:      soloFlow.ID,
		StepID:      soloStep.ID,
		ButtonIndex: 0,
		Label:       "Old Label",
		Kind:        models.ButtonKindQuickReply,
	}
	f.store.AddLink(link)

	origin := &Origin{
		BusinessID: fixtureBusinessID,
		FlowID:     soloFlow.ID,
		StepID:     soloStep.ID,
	}
	match, ok, err := NewButtonMatcher(f.store).Match(origin, "Completely Different")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, match.Index)
	assert.Equal(t, "Old Label", match.Link.Label)
}

func TestMatchAllTiersFail(t *testing.T) {
	f := newFixture(t)
	origin := f.origin(t)

	_, ok, err := NewButtonMatcher(f.store).Match(origin, "Nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchDistinctIndices(t *testing.T) {
	f := newFixture(t)

	// Property: for links L0..Ln matching Li's stored label returns i.
	origin := f.origin(t)
	labels := map[string]int{"Yes": 0, "Buy Now": 1}
	for label, want := range labels {
		for _, variant := range []string{label, fmt.Sprintf("  %s  ", label)} {
			match, ok, err := NewButtonMatcher(f.store).Match(origin, variant)
			require.NoError(t, err)
			require.True(t, ok, "label %q", variant)
			assert.Equal(t, want, match.Index, "label %q", variant)
		}
	}
}
