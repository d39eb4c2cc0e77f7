package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/storage"
)

// fakeSender captures outbound template requests instead of hitting a
// provider.
type fakeSender struct {
	outcome *models.SendOutcome
	sent    []*models.TemplateRequest
	images  []*models.TemplateRequest
}

func (f *fakeSender) SendTemplate(_ *models.WabaAccount, req *models.TemplateRequest) *models.SendOutcome {
	f.sent = append(f.sent, req)
	return f.result()
}

func (f *fakeSender) SendImageTemplate(_ *models.WabaAccount, req *models.TemplateRequest) *models.SendOutcome {
	f.images = append(f.images, req)
	return f.result()
}

func (f *fakeSender) result() *models.SendOutcome {
	if f.outcome != nil {
		return f.outcome
	}
	return &models.SendOutcome{Success: true, ProviderMessageID: "wamid.NEW", RawResponse: "{}"}
}

// capturingPublisher collects journey events synchronously.
type capturingPublisher struct {
	events []*JourneyEvent
}

func (p *capturingPublisher) Publish(event *JourneyEvent) {
	p.events = append(p.events, event)
}

// fixture is a seeded world: one published flow with a welcome step S
// (buttons "Yes" → thanks step T, "Buy Now" → terminal URL) and a
// campaign bound to the same flow.
type fixture struct {
	store     *storage.MemoryStore
	sender    *fakeSender
	publisher *capturingPublisher
	engine    *FlowEngine
	processor *ClickProcessor

	flow  *models.FlowDefinition
	stepS *models.FlowStep
	stepT *models.FlowStep

	linkYes *models.ButtonLink
	linkBuy *models.ButtonLink

	originMsg *models.OutboundMessage
}

const (
	fixtureBusinessID = uint(1)
	fixturePhone      = "15550100"
	fixtureContextID  = "wamid.ORIG"
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := storage.NewMemoryStore()

	flow := &models.FlowDefinition{
		BusinessID:  fixtureBusinessID,
		Name:        "welcome-journey",
		IsActive:    true,
		IsPublished: true,
		Steps: []models.FlowStep{
			{OrderIndex: 0, TemplateName: "welcome", TemplateKind: models.TemplateKindText},
			{OrderIndex: 1, TemplateName: "thanks", TemplateKind: models.TemplateKindText},
		},
	}
	require.NoError(t, store.CreateFlow(flow))

	loaded, err := store.GetFlow(flow.ID)
	require.NoError(t, err)
	stepS := &loaded.Steps[0]
	stepT := &loaded.Steps[1]

	slot := 1
	stepT.ProfileSlot = &slot
	store.UpdateStep(stepT)

	linkYes := &models.ButtonLink{
		FlowID:      flow.ID,
		StepID:      stepS.ID,
		ButtonIndex: 0,
		Label:       "Yes",
		Kind:        models.ButtonKindQuickReply,
		NextStepID:  &stepT.ID,
	}
	linkBuy := &models.ButtonLink{
		FlowID:      flow.ID,
		StepID:      stepS.ID,
		ButtonIndex: 1,
		Label:       "Buy Now",
		Kind:        models.ButtonKindURL,
		Value:       "https://shop.example/deal",
	}
	store.AddLink(linkYes)
	store.AddLink(linkBuy)

	require.NoError(t, store.UpsertTemplateMeta(&models.TemplateMeta{
		BusinessID: fixtureBusinessID, Name: "welcome",
		Language: "en", BodyParamCount: 0, Status: models.TemplateStatusApproved,
	}))
	require.NoError(t, store.UpsertTemplateMeta(&models.TemplateMeta{
		BusinessID: fixtureBusinessID, Name: "thanks",
		Language: "en", BodyParamCount: 1, Status: models.TemplateStatusApproved,
	}))

	store.AddSettings(&models.BusinessSettings{
		BusinessID: fixtureBusinessID, DefaultProvider: models.ProviderMeta, IsActive: true,
	})
	store.AddWabaAccount(&models.WabaAccount{
		BusinessID: fixtureBusinessID, Provider: models.ProviderMeta,
		PhoneNumberID: "100200300", IsDefault: true, IsActive: true,
	})

	// The originating send: step S went out earlier with its buttons
	// snapshotted.
	originMsg := &models.OutboundMessage{
		BusinessID:        fixtureBusinessID,
		ContactPhone:      fixturePhone,
		Provider:          models.ProviderMeta,
		SenderID:          "100200300",
		ProviderMessageID: fixtureContextID,
		TemplateName:      "welcome",
		FlowID:            &flow.ID,
		StepID:            &stepS.ID,
		RunID:             "run-1",
		Success:           true,
		ButtonsJSON:       models.SnapshotButtons([]models.ButtonLink{*linkYes, *linkBuy}),
	}
	require.NoError(t, store.CreateMessage(originMsg))

	sender := &fakeSender{}
	publisher := &capturingPublisher{}
	catalog := NewTemplateService(store)
	engine := NewFlowEngine(store, NewSenderResolver(store), catalog, map[string]MessageSender{
		models.ProviderMeta: sender,
	})
	processor := NewClickProcessor(
		store,
		NewOriginResolver(store),
		NewButtonMatcher(store),
		NewEligibilityEvaluator(store),
		NewJourneyTracker(store, publisher),
		engine,
	)

	return &fixture{
		store:     store,
		sender:    sender,
		publisher: publisher,
		engine:    engine,
		processor: processor,
		flow:      loaded,
		stepS:     stepS,
		stepT:     stepT,
		linkYes:   linkYes,
		linkBuy:   linkBuy,
		originMsg: originMsg,
	}
}

func (f *fixture) clickEntries() []*models.ExecutionLogEntry {
	return f.entriesByLevel(models.LogLevelClick)
}

func (f *fixture) sendEntries() []*models.ExecutionLogEntry {
	return f.entriesByLevel(models.LogLevelSend)
}

func (f *fixture) entriesByLevel(level string) []*models.ExecutionLogEntry {
	entries, _ := f.store.ListLogEntries(fixtureBusinessID, f.flow.ID)
	var out []*models.ExecutionLogEntry
	for _, e := range entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}
