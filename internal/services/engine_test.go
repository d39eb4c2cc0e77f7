package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
)

func (f *fixture) executionRequest() *models.NextStepContext {
	return &models.NextStepContext{
		BusinessID:      fixtureBusinessID,
		FlowID:          f.flow.ID,
		FlowVersion:     1,
		SourceStepID:    f.stepS.ID,
		TargetStepID:    &f.stepT.ID,
		ButtonIndex:     f.linkYes.ButtonIndex,
		ButtonLabel:     f.linkYes.Label,
		ContactPhone:    fixturePhone,
		Provider:        models.ProviderMeta,
		SenderID:        "100200300",
		Link:            f.linkYes,
		OriginMessageID: f.originMsg.ID,
		RunID:           "run-1",
	}
}

func TestExecuteSendsTargetTemplate(t *testing.T) {
	f := newFixture(t)

	result := f.engine.Execute(f.executionRequest())
	require.True(t, result.Success)
	assert.Equal(t, "wamid.NEW", result.ProviderMessageID)
	require.NotNil(t, result.MessageID)

	require.Len(t, f.sender.sent, 1)
	sent := f.sender.sent[0]
	assert.Equal(t, fixturePhone, sent.To)
	assert.Equal(t, "thanks", sent.TemplateName)
	assert.Equal(t, "en", sent.Language)
}

func TestExecuteProfileFallbackWhenContactUnknown(t *testing.T) {
	f := newFixture(t)

	f.engine.Execute(f.executionRequest())
	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, []string{ProfileNameFallback}, f.sender.sent[0].BodyParams)
}

func TestExecuteProfileSlotBeyondParamCount(t *testing.T) {
	f := newFixture(t)
	f.store.AddContact(&models.Contact{
		BusinessID: fixtureBusinessID, Phone: fixturePhone, ProfileName: "Ada",
	})

	// Template declares one body param but the step wants the name in
	// slot 3: the list grows with blanks.
	slot := 3
	f.stepT.ProfileSlot = &slot
	f.store.UpdateStep(f.stepT)

	f.engine.Execute(f.executionRequest())
	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, []string{"", "", "Ada"}, f.sender.sent[0].BodyParams)
}

func TestExecuteImageTemplateKind(t *testing.T) {
	f := newFixture(t)
	f.stepT.TemplateKind = models.TemplateKindImage
	f.store.UpdateStep(f.stepT)

	result := f.engine.Execute(f.executionRequest())
	require.True(t, result.Success)
	assert.Empty(t, f.sender.sent)
	assert.Len(t, f.sender.images, 1)
}

func TestExecuteUnapprovedTemplateFailsClosed(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.UpsertTemplateMeta(&models.TemplateMeta{
		BusinessID: fixtureBusinessID, Name: "thanks",
		Language: "en", BodyParamCount: 1, Status: models.TemplateStatusPending,
	}))

	result := f.engine.Execute(f.executionRequest())
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorText, "not approved")
	assert.Empty(t, f.sender.sent)

	// Config failure is audited even though nothing went out.
	entries := f.sendEntries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Success)
	assert.Nil(t, entries[0].MessageID)
}

func TestExecuteNoClientForProvider(t *testing.T) {
	f := newFixture(t)
	engine := NewFlowEngine(f.store, NewSenderResolver(f.store), NewTemplateService(f.store), nil)

	result := engine.Execute(f.executionRequest())
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorText, "no client wired")
}

func TestExecuteTerminalLinkRedirects(t *testing.T) {
	f := newFixture(t)

	req := f.executionRequest()
	req.Link = f.linkBuy
	req.ButtonIndex = f.linkBuy.ButtonIndex
	req.ButtonLabel = f.linkBuy.Label
	req.TargetStepID = nil

	result := f.engine.Execute(req)
	require.True(t, result.Success)
	assert.Equal(t, "https://shop.example/deal", result.RedirectURL)
	assert.Empty(t, f.sender.sent)
	assert.Empty(t, f.sendEntries())
}
