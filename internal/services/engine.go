package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/storage"
)

// ProfileNameFallback is injected when a contact has neither a profile
// name nor a stored name.
const ProfileNameFallback = "there"

// MessageSender is one provider's outbound client.
type MessageSender interface {
	SendTemplate(account *models.WabaAccount, req *models.TemplateRequest) *models.SendOutcome
	SendImageTemplate(account *models.WabaAccount, req *models.TemplateRequest) *models.SendOutcome
}

// FlowEngine executes one matched click: loads the target step,
// resolves template metadata and the sending identity, builds the
// provider payload and persists the outcome. Expected failures come
// back in the result, never as a raised error.
type FlowEngine struct {
	store          storage.Store
	senderResolver *SenderResolver
	catalog        TemplateCatalog
	senders        map[string]MessageSender
}

// NewFlowEngine creates a new flow execution engine
func NewFlowEngine(store storage.Store, senderResolver *SenderResolver, catalog TemplateCatalog, senders map[string]MessageSender) *FlowEngine {
	return &FlowEngine{
		store:          store,
		senderResolver: senderResolver,
		catalog:        catalog,
		senders:        senders,
	}
}

// Execute runs one execution request to completion.
//
// A terminal link (no next step, typically a URL button) yields a
// redirect result without touching the sender resolver or the
// provider. Otherwise the target step's template goes out and both an
// outbound message record and a send-level audit entry are written,
// even when the provider rejected the send.
func (e *FlowEngine) Execute(req *models.NextStepContext) *models.NextStepResult {
	if req.Link == nil {
		return e.fail(req, 0, "", "no button link on execution request")
	}
	if req.Link.IsTerminal() {
		return &models.NextStepResult{Success: true, RedirectURL: req.Link.Value}
	}

	step, err := e.store.GetStep(*req.Link.NextStepID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return e.fail(req, *req.Link.NextStepID, "", fmt.Sprintf("next step %d not found", *req.Link.NextStepID))
		}
		return e.fail(req, *req.Link.NextStepID, "", fmt.Sprintf("loading next step %d: %v", *req.Link.NextStepID, err))
	}
	if step.TemplateName == "" {
		return e.fail(req, step.ID, "", fmt.Sprintf("step %d has no template configured", step.ID))
	}

	meta, err := e.catalog.GetTemplateMeta(req.BusinessID, step.TemplateName)
	if err != nil {
		return e.fail(req, step.ID, step.TemplateName, err.Error())
	}
	if !meta.IsApproved() {
		return e.fail(req, step.ID, step.TemplateName, fmt.Sprintf("template %q is not approved (status %s)", meta.Name, meta.Status))
	}

	sender, err := e.senderResolver.Resolve(req)
	if err != nil {
		return e.fail(req, step.ID, step.TemplateName, err.Error())
	}
	client, ok := e.senders[sender.Provider]
	if !ok {
		return e.fail(req, step.ID, step.TemplateName, fmt.Sprintf("no client wired for provider %q", sender.Provider))
	}

	templateReq := &models.TemplateRequest{
		To:           req.ContactPhone,
		TemplateName: step.TemplateName,
		Language:     meta.Language,
		BodyParams:   e.bodyParams(req, step, meta),
	}

	var outcome *models.SendOutcome
	if step.TemplateKind == models.TemplateKindImage {
		outcome = client.SendImageTemplate(sender.Account, templateReq)
	} else {
		outcome = client.SendTemplate(sender.Account, templateReq)
	}

	// Persist the attempt whatever happened, so the audit trail does
	// not depend on send success.
	msg := &models.OutboundMessage{
		BusinessID:        req.BusinessID,
		ContactPhone:      req.ContactPhone,
		Provider:          sender.Provider,
		SenderID:          sender.Account.PhoneNumberID,
		ProviderMessageID: outcome.ProviderMessageID,
		TemplateName:      step.TemplateName,
		FlowID:            &req.FlowID,
		StepID:            &step.ID,
		RunID:             req.RunID,
		Success:           outcome.Success,
		ErrorText:         outcome.ErrorMessage,
		RawResponse:       outcome.RawResponse,
		ButtonsJSON:       models.SnapshotButtons(step.Links),
	}
	if err := e.store.CreateMessage(msg); err != nil {
		log.Printf("⚠️  Failed to persist outbound message: %v", err)
	}

	entry := &models.ExecutionLogEntry{
		BusinessID:      req.BusinessID,
		FlowID:          req.FlowID,
		StepID:          step.ID,
		ButtonIndex:     req.ButtonIndex,
		ButtonLabel:     req.ButtonLabel,
		Level:           models.LogLevelSend,
		TemplateName:    step.TemplateName,
		Success:         outcome.Success,
		ErrorText:       outcome.ErrorMessage,
		RawResponse:     outcome.RawResponse,
		OriginMessageID: req.OriginMessageID,
		MessageID:       &msg.ID,
		RunID:           req.RunID,
	}
	if err := e.store.CreateLogEntry(entry); err != nil {
		log.Printf("⚠️  Failed to write send log entry: %v", err)
	}

	result := &models.NextStepResult{
		Success:           outcome.Success,
		ErrorText:         outcome.ErrorMessage,
		ProviderMessageID: outcome.ProviderMessageID,
		MessageID:         &msg.ID,
	}
	if !outcome.Success {
		log.Printf("❌ Send failed for flow %d step %d: %s", req.FlowID, step.ID, outcome.ErrorMessage)
	}
	return result
}

// bodyParams builds the template body parameters, placing the
// contact's display name at the requested 1-based slot and left-padding
// shorter lists with empty strings.
func (e *FlowEngine) bodyParams(req *models.NextStepContext, step *models.FlowStep, meta *models.TemplateMeta) []string {
	params := make([]string, meta.BodyParamCount)
	if step.ProfileSlot == nil {
		return params
	}

	slot := *step.ProfileSlot
	if slot < 1 {
		return params
	}
	for len(params) < slot {
		params = append(params, "")
	}

	name := ProfileNameFallback
	contact, err := e.store.GetContactByPhone(req.BusinessID, req.ContactPhone)
	if err == nil {
		if display := contact.DisplayName(); display != "" {
			name = display
		}
	}
	params[slot-1] = name
	return params
}

// fail records a configuration-level failure as a send entry (no send
// was attempted) and returns the descriptive result.
func (e *FlowEngine) fail(req *models.NextStepContext, stepID uint, templateName, errText string) *models.NextStepResult {
	log.Printf("❌ Execution failed for flow %d: %s", req.FlowID, errText)

	entry := &models.ExecutionLogEntry{
		BusinessID:      req.BusinessID,
		FlowID:          req.FlowID,
		StepID:          stepID,
		ButtonIndex:     req.ButtonIndex,
		ButtonLabel:     req.ButtonLabel,
		Level:           models.LogLevelSend,
		TemplateName:    templateName,
		Success:         false,
		ErrorText:       errText,
		OriginMessageID: req.OriginMessageID,
		RunID:           req.RunID,
	}
	if err := e.store.CreateLogEntry(entry); err != nil {
		log.Printf("⚠️  Failed to write failure log entry: %v", err)
	}

	return &models.NextStepResult{Success: false, ErrorText: errText}
}
