package services

import (
	"errors"
	"log"
	"strings"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/storage"
)

// EligibilityEvaluator applies a step's optional entry predicate
// (required tag, required source) against a contact's current
// attributes. An ineligible step is treated as no step: nothing is
// sent and nothing surfaces to the user.
type EligibilityEvaluator struct {
	store storage.Store
}

// NewEligibilityEvaluator creates a new eligibility evaluator
func NewEligibilityEvaluator(store storage.Store) *EligibilityEvaluator {
	return &EligibilityEvaluator{store: store}
}

// Eligible reports whether the contact may enter the step. A step with
// no predicate admits everyone; an unknown contact satisfies nothing.
func (e *EligibilityEvaluator) Eligible(businessID uint, phone string, step *models.FlowStep) bool {
	if step.RequiredTag == "" && step.RequiredSource == "" {
		return true
	}

	contact, err := e.store.GetContactByPhone(businessID, phone)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("⚠️  Eligibility lookup failed for %s: %v", phone, err)
		}
		return false
	}

	if step.RequiredTag != "" && !contact.HasTag(step.RequiredTag) {
		return false
	}
	if step.RequiredSource != "" && !strings.EqualFold(contact.Source, step.RequiredSource) {
		return false
	}
	return true
}
