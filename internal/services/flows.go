package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/storage"
)

// Authoring errors surfaced to the API layer.
var (
	ErrDuplicateFlowName = errors.New("an active flow with this name already exists")
	ErrFlowInUse         = errors.New("flow has outbound messages and cannot be deleted")
)

// FlowService is the authoring boundary: draft creation, the one-way
// publish flip and deletion of unused flows. The runtime engine only
// reads flows.
type FlowService struct {
	store storage.Store
}

// NewFlowService creates a new flow authoring service
func NewFlowService(store storage.Store) *FlowService {
	return &FlowService{store: store}
}

// CreateDraft stores a new flow as an unpublished draft. The name must
// be unique among the business's active flows.
func (s *FlowService) CreateDraft(flow *models.FlowDefinition) error {
	flow.Name = strings.TrimSpace(flow.Name)
	if flow.Name == "" {
		return fmt.Errorf("flow name is required")
	}
	if flow.BusinessID == 0 {
		return fmt.Errorf("business id is required")
	}

	_, err := s.store.GetActiveFlowByName(flow.BusinessID, flow.Name)
	if err == nil {
		return ErrDuplicateFlowName
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	flow.IsActive = true
	flow.IsPublished = false
	return s.store.CreateFlow(flow)
}

// Publish flips the published flag. There is no unpublish.
func (s *FlowService) Publish(id uint) error {
	flow, err := s.store.GetFlow(id)
	if err != nil {
		return err
	}
	if flow.IsPublished {
		return nil
	}
	flow.IsPublished = true
	return s.store.UpdateFlow(flow)
}

// Delete removes a flow that no outbound message references.
func (s *FlowService) Delete(id uint) error {
	if _, err := s.store.GetFlow(id); err != nil {
		return err
	}
	count, err := s.store.CountMessagesByFlow(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrFlowInUse
	}
	return s.store.DeleteFlow(id)
}

// Get returns a flow with its steps and links.
func (s *FlowService) Get(id uint) (*models.FlowDefinition, error) {
	return s.store.GetFlow(id)
}

// ListPublished returns the business's published flows.
func (s *FlowService) ListPublished(businessID uint) ([]*models.FlowDefinition, error) {
	return s.store.ListFlows(businessID, true)
}

// ListDrafts returns the business's unpublished flows.
func (s *FlowService) ListDrafts(businessID uint) ([]*models.FlowDefinition, error) {
	return s.store.ListFlows(businessID, false)
}
