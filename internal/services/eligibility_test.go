package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/storage"
)

func TestEligibleNoPredicateAdmitsEveryone(t *testing.T) {
	store := storage.NewMemoryStore()
	eval := NewEligibilityEvaluator(store)

	step := &models.FlowStep{TemplateName: "welcome"}
	assert.True(t, eval.Eligible(1, "15550100", step))
}

func TestEligibleUnknownContactSatisfiesNothing(t *testing.T) {
	store := storage.NewMemoryStore()
	eval := NewEligibilityEvaluator(store)

	step := &models.FlowStep{RequiredTag: "vip"}
	assert.False(t, eval.Eligible(1, "15550100", step))
}

func TestEligibleTagPredicate(t *testing.T) {
	store := storage.NewMemoryStore()
	store.AddContact(&models.Contact{
		BusinessID: 1,
		Phone:      "15550100",
		Tags:       "lead, VIP ,newsletter",
		Source:     "facebook",
	})
	eval := NewEligibilityEvaluator(store)

	assert.True(t, eval.Eligible(1, "15550100", &models.FlowStep{RequiredTag: "vip"}))
	assert.True(t, eval.Eligible(1, "15550100", &models.FlowStep{RequiredTag: "newsletter"}))
	assert.False(t, eval.Eligible(1, "15550100", &models.FlowStep{RequiredTag: "churned"}))
}

func TestEligibleSourcePredicate(t *testing.T) {
	store := storage.NewMemoryStore()
	store.AddContact(&models.Contact{
		BusinessID: 1,
		Phone:      "15550100",
		Source:     "Facebook",
	})
	eval := NewEligibilityEvaluator(store)

	assert.True(t, eval.Eligible(1, "15550100", &models.FlowStep{RequiredSource: "facebook"}))
	assert.False(t, eval.Eligible(1, "15550100", &models.FlowStep{RequiredSource: "instagram"}))
}

func TestEligibleBothPredicatesMustHold(t *testing.T) {
	store := storage.NewMemoryStore()
	store.AddContact(&models.Contact{
		BusinessID: 1,
		Phone:      "15550100",
		Tags:       "vip",
		Source:     "facebook",
	})
	eval := NewEligibilityEvaluator(store)

	both := &models.FlowStep{RequiredTag: "vip", RequiredSource: "facebook"}
	assert.True(t, eval.Eligible(1, "15550100", both))

	wrongSource := &models.FlowStep{RequiredTag: "vip", RequiredSource: "instagram"}
	assert.False(t, eval.Eligible(1, "15550100", wrongSource))
}

func TestEligibleScopedToBusiness(t *testing.T) {
	store := storage.NewMemoryStore()
	store.AddContact(&models.Contact{
		BusinessID: 2,
		Phone:      "15550100",
		Tags:       "vip",
	})
	eval := NewEligibilityEvaluator(store)

	// Same phone under another business is a different contact.
	assert.False(t, eval.Eligible(1, "15550100", &models.FlowStep{RequiredTag: "vip"}))
}
