package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
)

// DatabaseStore implements Store on top of GORM/PostgreSQL.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a new database-backed storage
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Flow graph operations

func (d *DatabaseStore) CreateFlow(flow *models.FlowDefinition) error {
	return d.db.Create(flow).Error
}

func (d *DatabaseStore) GetFlow(id uint) (*models.FlowDefinition, error) {
	var flow models.FlowDefinition
	err := d.db.
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Preload("Steps.Links", func(db *gorm.DB) *gorm.DB { return db.Order("button_index ASC") }).
		First(&flow, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &flow, nil
}

func (d *DatabaseStore) GetActiveFlowByName(businessID uint, name string) (*models.FlowDefinition, error) {
	var flow models.FlowDefinition
	err := d.db.
		Where("business_id = ? AND name = ? AND is_active = ?", businessID, name, true).
		First(&flow).Error
	if err != nil {
		return nil, translate(err)
	}
	return &flow, nil
}

func (d *DatabaseStore) ListFlows(businessID uint, published bool) ([]*models.FlowDefinition, error) {
	var flows []*models.FlowDefinition
	err := d.db.
		Where("business_id = ? AND is_active = ? AND is_published = ?", businessID, true, published).
		Order("created_at DESC").
		Find(&flows).Error
	return flows, err
}

func (d *DatabaseStore) UpdateFlow(flow *models.FlowDefinition) error {
	return d.db.Save(flow).Error
}

func (d *DatabaseStore) DeleteFlow(id uint) error {
	return d.db.Delete(&models.FlowDefinition{}, id).Error
}

func (d *DatabaseStore) GetStep(id uint) (*models.FlowStep, error) {
	var step models.FlowStep
	err := d.db.
		Preload("Links", func(db *gorm.DB) *gorm.DB { return db.Order("button_index ASC") }).
		First(&step, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &step, nil
}

func (d *DatabaseStore) GetEntryStep(flowID uint) (*models.FlowStep, error) {
	var step models.FlowStep
	err := d.db.
		Preload("Links", func(db *gorm.DB) *gorm.DB { return db.Order("button_index ASC") }).
		Where("flow_id = ?", flowID).
		Order("order_index ASC").
		First(&step).Error
	if err != nil {
		return nil, translate(err)
	}
	return &step, nil
}

func (d *DatabaseStore) GetLinks(stepID uint) ([]models.ButtonLink, error) {
	var links []models.ButtonLink
	err := d.db.
		Where("step_id = ?", stepID).
		Order("button_index ASC").
		Find(&links).Error
	return links, err
}

func (d *DatabaseStore) GetLink(flowID, stepID uint, buttonIndex int) (*models.ButtonLink, error) {
	var link models.ButtonLink
	err := d.db.
		Where("flow_id = ? AND step_id = ? AND button_index = ?", flowID, stepID, buttonIndex).
		First(&link).Error
	if err != nil {
		return nil, translate(err)
	}
	return &link, nil
}

// Outbound message operations

func (d *DatabaseStore) CreateMessage(msg *models.OutboundMessage) error {
	return d.db.Create(msg).Error
}

func (d *DatabaseStore) GetMessageByProviderID(providerMessageID string) (*models.OutboundMessage, error) {
	if providerMessageID == "" {
		return nil, ErrNotFound
	}
	var msg models.OutboundMessage
	err := d.db.
		Where("provider_message_id = ?", providerMessageID).
		Order("created_at DESC").
		First(&msg).Error
	if err != nil {
		return nil, translate(err)
	}
	return &msg, nil
}

func (d *DatabaseStore) CountMessagesByFlow(flowID uint) (int64, error) {
	var count int64
	err := d.db.Model(&models.OutboundMessage{}).
		Where("flow_id = ?", flowID).
		Count(&count).Error
	return count, err
}

// Campaign operations

func (d *DatabaseStore) GetCampaign(id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := d.db.First(&campaign, id).Error; err != nil {
		return nil, translate(err)
	}
	return &campaign, nil
}

// Contact operations

func (d *DatabaseStore) GetContactByPhone(businessID uint, phone string) (*models.Contact, error) {
	var contact models.Contact
	err := d.db.
		Where("business_id = ? AND phone = ?", businessID, phone).
		First(&contact).Error
	if err != nil {
		return nil, translate(err)
	}
	return &contact, nil
}

func (d *DatabaseStore) UpsertContactProfileName(businessID uint, phone, profileName string) error {
	if profileName == "" {
		return nil
	}
	var contact models.Contact
	err := d.db.
		Where("business_id = ? AND phone = ?", businessID, phone).
		First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		contact = models.Contact{
			BusinessID:  businessID,
			Phone:       phone,
			ProfileName: profileName,
			Source:      "organic",
		}
		return d.db.Create(&contact).Error
	}
	if err != nil {
		return err
	}
	if contact.ProfileName == profileName {
		return nil
	}
	contact.ProfileName = profileName
	return d.db.Save(&contact).Error
}

// Sender configuration

func (d *DatabaseStore) GetActiveSettings(businessID uint) (*models.BusinessSettings, error) {
	var settings models.BusinessSettings
	err := d.db.
		Where("business_id = ? AND is_active = ?", businessID, true).
		Order("updated_at DESC").
		First(&settings).Error
	if err != nil {
		return nil, translate(err)
	}
	return &settings, nil
}

func (d *DatabaseStore) ListActiveWabaAccounts(businessID uint, provider string) ([]*models.WabaAccount, error) {
	var accounts []*models.WabaAccount
	err := d.db.
		Where("business_id = ? AND provider = ? AND is_active = ?", businessID, provider, true).
		Order("is_default DESC, id ASC").
		Find(&accounts).Error
	return accounts, err
}

// Template catalog

func (d *DatabaseStore) GetTemplateMeta(businessID uint, name string) (*models.TemplateMeta, error) {
	var meta models.TemplateMeta
	err := d.db.
		Where("business_id = ? AND name = ?", businessID, name).
		First(&meta).Error
	if err != nil {
		return nil, translate(err)
	}
	return &meta, nil
}

func (d *DatabaseStore) UpsertTemplateMeta(meta *models.TemplateMeta) error {
	var existing models.TemplateMeta
	err := d.db.
		Where("business_id = ? AND name = ?", meta.BusinessID, meta.Name).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return d.db.Create(meta).Error
	}
	if err != nil {
		return err
	}
	existing.Language = meta.Language
	existing.BodyParamCount = meta.BodyParamCount
	existing.Status = meta.Status
	return d.db.Save(&existing).Error
}

// Execution audit log

func (d *DatabaseStore) CreateLogEntry(entry *models.ExecutionLogEntry) error {
	return d.db.Create(entry).Error
}

func (d *DatabaseStore) ListLogEntries(businessID, flowID uint) ([]*models.ExecutionLogEntry, error) {
	var entries []*models.ExecutionLogEntry
	err := d.db.
		Where("business_id = ? AND flow_id = ?", businessID, flowID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

// Journey state

func (d *DatabaseStore) GetJourney(businessID, flowID uint, phone string) (*models.JourneyState, error) {
	var journey models.JourneyState
	err := d.db.
		Where("business_id = ? AND flow_id = ? AND contact_phone = ?", businessID, flowID, phone).
		First(&journey).Error
	if err != nil {
		return nil, translate(err)
	}
	return &journey, nil
}

func (d *DatabaseStore) SaveJourney(journey *models.JourneyState) error {
	return d.db.Save(journey).Error
}

// compile-time check
var _ Store = (*DatabaseStore)(nil)
