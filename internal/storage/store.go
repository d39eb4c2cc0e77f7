package storage

import (
	"errors"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
)

// ErrNotFound is returned by lookups that matched no row.
var ErrNotFound = errors.New("record not found")

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for storage operations
type Store interface {
	// Flow graph operations
	CreateFlow(flow *models.FlowDefinition) error
	GetFlow(id uint) (*models.FlowDefinition, error)
	GetActiveFlowByName(businessID uint, name string) (*models.FlowDefinition, error)
	ListFlows(businessID uint, published bool) ([]*models.FlowDefinition, error)
	UpdateFlow(flow *models.FlowDefinition) error
	DeleteFlow(id uint) error
	GetStep(id uint) (*models.FlowStep, error)
	GetEntryStep(flowID uint) (*models.FlowStep, error)
	GetLinks(stepID uint) ([]models.ButtonLink, error)
	GetLink(flowID, stepID uint, buttonIndex int) (*models.ButtonLink, error)

	// Outbound message operations
	CreateMessage(msg *models.OutboundMessage) error
	GetMessageByProviderID(providerMessageID string) (*models.OutboundMessage, error)
	CountMessagesByFlow(flowID uint) (int64, error)

	// Campaign operations
	GetCampaign(id uint) (*models.Campaign, error)

	// Contact operations
	GetContactByPhone(businessID uint, phone string) (*models.Contact, error)
	UpsertContactProfileName(businessID uint, phone, profileName string) error

	// Sender configuration
	GetActiveSettings(businessID uint) (*models.BusinessSettings, error)
	ListActiveWabaAccounts(businessID uint, provider string) ([]*models.WabaAccount, error)

	// Template catalog
	GetTemplateMeta(businessID uint, name string) (*models.TemplateMeta, error)
	UpsertTemplateMeta(meta *models.TemplateMeta) error

	// Execution audit log
	CreateLogEntry(entry *models.ExecutionLogEntry) error
	ListLogEntries(businessID, flowID uint) ([]*models.ExecutionLogEntry, error)

	// Journey state
	GetJourney(businessID, flowID uint, phone string) (*models.JourneyState, error)
	SaveJourney(journey *models.JourneyState) error
}
