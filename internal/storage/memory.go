package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
)

// MemoryStore holds all data in memory for tests and local development
type MemoryStore struct {
	mu sync.RWMutex

	flows     map[uint]*models.FlowDefinition
	steps     map[uint]*models.FlowStep
	links     map[uint]*models.ButtonLink
	messages  map[uint]*models.OutboundMessage
	campaigns map[uint]*models.Campaign
	contacts  map[uint]*models.Contact
	settings  map[uint]*models.BusinessSettings
	wabas     map[uint]*models.WabaAccount
	templates map[uint]*models.TemplateMeta
	logs      []*models.ExecutionLogEntry
	journeys  map[string]*models.JourneyState

	nextID uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		flows:     make(map[uint]*models.FlowDefinition),
		steps:     make(map[uint]*models.FlowStep),
		links:     make(map[uint]*models.ButtonLink),
		messages:  make(map[uint]*models.OutboundMessage),
		campaigns: make(map[uint]*models.Campaign),
		contacts:  make(map[uint]*models.Contact),
		settings:  make(map[uint]*models.BusinessSettings),
		wabas:     make(map[uint]*models.WabaAccount),
		templates: make(map[uint]*models.TemplateMeta),
		journeys:  make(map[string]*models.JourneyState),
	}
}

func (m *MemoryStore) allocID() uint {
	m.nextID++
	return m.nextID
}

func journeyKey(businessID, flowID uint, phone string) string {
	return fmt.Sprintf("%d:%d:%s", businessID, flowID, phone)
}

// Flow graph operations

func (m *MemoryStore) CreateFlow(flow *models.FlowDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	flow.ID = m.allocID()
	flow.CreatedAt = time.Now()
	flow.UpdatedAt = time.Now()
	m.flows[flow.ID] = flow

	// Persist nested steps and links the way AutoMigrate'd GORM would.
	for i := range flow.Steps {
		step := &flow.Steps[i]
		step.ID = m.allocID()
		step.FlowID = flow.ID
		step.CreatedAt = time.Now()
		m.steps[step.ID] = step
		for j := range step.Links {
			link := &step.Links[j]
			link.ID = m.allocID()
			link.FlowID = flow.ID
			link.StepID = step.ID
			link.CreatedAt = time.Now()
			m.links[link.ID] = link
		}
	}
	return nil
}

func (m *MemoryStore) GetFlow(id uint) (*models.FlowDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	flow, exists := m.flows[id]
	if !exists {
		return nil, ErrNotFound
	}
	out := *flow
	out.Steps = m.stepsForFlow(id)
	return &out, nil
}

func (m *MemoryStore) stepsForFlow(flowID uint) []models.FlowStep {
	var steps []models.FlowStep
	for _, s := range m.steps {
		if s.FlowID == flowID {
			step := *s
			step.Links = m.linksForStep(s.ID)
			steps = append(steps, step)
		}
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].OrderIndex < steps[j].OrderIndex })
	return steps
}

func (m *MemoryStore) linksForStep(stepID uint) []models.ButtonLink {
	var links []models.ButtonLink
	for _, l := range m.links {
		if l.StepID == stepID {
			links = append(links, *l)
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].ButtonIndex < links[j].ButtonIndex })
	return links
}

func (m *MemoryStore) GetActiveFlowByName(businessID uint, name string) (*models.FlowDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, f := range m.flows {
		if f.BusinessID == businessID && f.Name == name && f.IsActive {
			out := *f
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListFlows(businessID uint, published bool) ([]*models.FlowDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var flows []*models.FlowDefinition
	for _, f := range m.flows {
		if f.BusinessID == businessID && f.IsActive && f.IsPublished == published {
			out := *f
			flows = append(flows, &out)
		}
	}
	sort.Slice(flows, func(i, j int) bool { return flows[i].ID < flows[j].ID })
	return flows, nil
}

func (m *MemoryStore) UpdateFlow(flow *models.FlowDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.flows[flow.ID]; !exists {
		return ErrNotFound
	}
	flow.UpdatedAt = time.Now()
	stored := *flow
	stored.Steps = nil
	m.flows[flow.ID] = &stored
	return nil
}

func (m *MemoryStore) DeleteFlow(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.flows, id)
	for sid, s := range m.steps {
		if s.FlowID == id {
			delete(m.steps, sid)
		}
	}
	for lid, l := range m.links {
		if l.FlowID == id {
			delete(m.links, lid)
		}
	}
	return nil
}

// UpdateStep replaces a stored step's own fields (links unaffected).
func (m *MemoryStore) UpdateStep(step *models.FlowStep) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *step
	stored.Links = nil
	m.steps[step.ID] = &stored
}

// AddLink attaches a link to an existing step, for fixtures built in
// stages (a link's next step id is only known once steps exist).
func (m *MemoryStore) AddLink(link *models.ButtonLink) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if link.ID == 0 {
		link.ID = m.allocID()
	}
	link.CreatedAt = time.Now()
	m.links[link.ID] = link
}

func (m *MemoryStore) GetStep(id uint) (*models.FlowStep, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	step, exists := m.steps[id]
	if !exists {
		return nil, ErrNotFound
	}
	out := *step
	out.Links = m.linksForStep(id)
	return &out, nil
}

func (m *MemoryStore) GetEntryStep(flowID uint) (*models.FlowStep, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	steps := m.stepsForFlow(flowID)
	if len(steps) == 0 {
		return nil, ErrNotFound
	}
	entry := steps[0]
	return &entry, nil
}

func (m *MemoryStore) GetLinks(stepID uint) ([]models.ButtonLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.linksForStep(stepID), nil
}

func (m *MemoryStore) GetLink(flowID, stepID uint, buttonIndex int) (*models.ButtonLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, l := range m.links {
		if l.FlowID == flowID && l.StepID == stepID && l.ButtonIndex == buttonIndex {
			out := *l
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// Outbound message operations

func (m *MemoryStore) CreateMessage(msg *models.OutboundMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg.ID = m.allocID()
	msg.CreatedAt = time.Now()
	stored := *msg
	m.messages[msg.ID] = &stored
	return nil
}

func (m *MemoryStore) GetMessageByProviderID(providerMessageID string) (*models.OutboundMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if providerMessageID == "" {
		return nil, ErrNotFound
	}
	var newest *models.OutboundMessage
	for _, msg := range m.messages {
		if msg.ProviderMessageID == providerMessageID {
			if newest == nil || msg.ID > newest.ID {
				newest = msg
			}
		}
	}
	if newest == nil {
		return nil, ErrNotFound
	}
	out := *newest
	return &out, nil
}

func (m *MemoryStore) CountMessagesByFlow(flowID uint) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, msg := range m.messages {
		if msg.FlowID != nil && *msg.FlowID == flowID {
			count++
		}
	}
	return count, nil
}

// Campaign operations

func (m *MemoryStore) AddCampaign(campaign *models.Campaign) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if campaign.ID == 0 {
		campaign.ID = m.allocID()
	}
	m.campaigns[campaign.ID] = campaign
}

func (m *MemoryStore) GetCampaign(id uint) (*models.Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	campaign, exists := m.campaigns[id]
	if !exists {
		return nil, ErrNotFound
	}
	out := *campaign
	return &out, nil
}

// Contact operations

func (m *MemoryStore) AddContact(contact *models.Contact) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if contact.ID == 0 {
		contact.ID = m.allocID()
	}
	m.contacts[contact.ID] = contact
}

func (m *MemoryStore) GetContactByPhone(businessID uint, phone string) (*models.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.contacts {
		if c.BusinessID == businessID && c.Phone == phone {
			out := *c
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpsertContactProfileName(businessID uint, phone, profileName string) error {
	if profileName == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.contacts {
		if c.BusinessID == businessID && c.Phone == phone {
			c.ProfileName = profileName
			return nil
		}
	}
	contact := &models.Contact{
		BusinessID:  businessID,
		Phone:       phone,
		ProfileName: profileName,
		Source:      "organic",
	}
	contact.ID = m.allocID()
	m.contacts[contact.ID] = contact
	return nil
}

// Sender configuration

func (m *MemoryStore) AddSettings(settings *models.BusinessSettings) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if settings.ID == 0 {
		settings.ID = m.allocID()
	}
	m.settings[settings.ID] = settings
}

func (m *MemoryStore) GetActiveSettings(businessID uint) (*models.BusinessSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.settings {
		if s.BusinessID == businessID && s.IsActive {
			out := *s
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) AddWabaAccount(account *models.WabaAccount) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if account.ID == 0 {
		account.ID = m.allocID()
	}
	m.wabas[account.ID] = account
}

func (m *MemoryStore) ListActiveWabaAccounts(businessID uint, provider string) ([]*models.WabaAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var accounts []*models.WabaAccount
	for _, a := range m.wabas {
		if a.BusinessID == businessID && a.Provider == provider && a.IsActive {
			out := *a
			accounts = append(accounts, &out)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].IsDefault != accounts[j].IsDefault {
			return accounts[i].IsDefault
		}
		return accounts[i].ID < accounts[j].ID
	})
	return accounts, nil
}

// Template catalog

func (m *MemoryStore) GetTemplateMeta(businessID uint, name string) (*models.TemplateMeta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, t := range m.templates {
		if t.BusinessID == businessID && t.Name == name {
			out := *t
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpsertTemplateMeta(meta *models.TemplateMeta) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.templates {
		if t.BusinessID == meta.BusinessID && t.Name == meta.Name {
			t.Language = meta.Language
			t.BodyParamCount = meta.BodyParamCount
			t.Status = meta.Status
			return nil
		}
	}
	stored := *meta
	stored.ID = m.allocID()
	m.templates[stored.ID] = &stored
	return nil
}

// Execution audit log

func (m *MemoryStore) CreateLogEntry(entry *models.ExecutionLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = m.allocID()
	entry.CreatedAt = time.Now()
	stored := *entry
	m.logs = append(m.logs, &stored)
	return nil
}

func (m *MemoryStore) ListLogEntries(businessID, flowID uint) ([]*models.ExecutionLogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []*models.ExecutionLogEntry
	for _, e := range m.logs {
		if e.BusinessID == businessID && e.FlowID == flowID {
			out := *e
			entries = append(entries, &out)
		}
	}
	return entries, nil
}

// Journey state

func (m *MemoryStore) GetJourney(businessID, flowID uint, phone string) (*models.JourneyState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	journey, exists := m.journeys[journeyKey(businessID, flowID, phone)]
	if !exists {
		return nil, ErrNotFound
	}
	out := *journey
	return &out, nil
}

func (m *MemoryStore) SaveJourney(journey *models.JourneyState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if journey.ID == 0 {
		journey.ID = m.allocID()
		journey.CreatedAt = time.Now()
	}
	journey.UpdatedAt = time.Now()
	stored := *journey
	m.journeys[journeyKey(journey.BusinessID, journey.FlowID, journey.ContactPhone)] = &stored
	return nil
}

// compile-time check
var _ Store = (*MemoryStore)(nil)
