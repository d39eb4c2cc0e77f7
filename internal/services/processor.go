package services

import (
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/storage"
)

// ClickProcessor runs the full click pipeline: origin resolution,
// button matching, audit, journey tracking, eligibility and execution.
// Unmatchable clicks are skipped quietly; only store/IO trouble comes
// back as an error.
type ClickProcessor struct {
	store       storage.Store
	origins     *OriginResolver
	matcher     *ButtonMatcher
	eligibility *EligibilityEvaluator
	journeys    *JourneyTracker
	engine      *FlowEngine
}

// NewClickProcessor creates a new click processor
func NewClickProcessor(store storage.Store, origins *OriginResolver, matcher *ButtonMatcher, eligibility *EligibilityEvaluator, journeys *JourneyTracker, engine *FlowEngine) *ClickProcessor {
	return &ClickProcessor{
		store:       store,
		origins:     origins,
		matcher:     matcher,
		eligibility: eligibility,
		journeys:    journeys,
		engine:      engine,
	}
}

// ProcessClick handles one normalized click event end to end. The
// returned result is nil when the click was skipped (no origin, no
// match, ineligible target).
func (p *ClickProcessor) ProcessClick(event models.ClickEvent) (*models.NextStepResult, error) {
	origin, err := p.origins.Resolve(event.ContextID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("ℹ️  Click from %s cannot be attributed (context %s), skipping", event.FromPhone, event.ContextID)
			return nil, nil
		}
		return nil, err
	}

	// Best-effort profile upsert; never blocks matching.
	if event.ProfileName != "" {
		if err := p.store.UpsertContactProfileName(origin.BusinessID, event.FromPhone, event.ProfileName); err != nil {
			log.Printf("⚠️  Profile upsert failed for %s: %v", event.FromPhone, err)
		}
	}

	match, ok, err := p.matcher.Match(origin, event.Label)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Printf("ℹ️  Label %q matched no button on step %d, skipping", event.Label, origin.StepID)
		return nil, nil
	}

	runID := origin.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	// Audit and journey record the button's stored label; the wire text
	// may differ in casing and whitespace.
	label := match.Link.Label
	if label == "" {
		label = event.Label
	}

	// The click itself is an audit fact, terminal or not.
	clickEntry := &models.ExecutionLogEntry{
		BusinessID:      origin.BusinessID,
		FlowID:          origin.FlowID,
		StepID:          origin.StepID,
		ButtonIndex:     match.Index,
		ButtonLabel:     label,
		Level:           models.LogLevelClick,
		Success:         true,
		OriginMessageID: origin.Message.ID,
		RunID:           runID,
	}
	if err := p.store.CreateLogEntry(clickEntry); err != nil {
		log.Printf("⚠️  Failed to write click log entry: %v", err)
	}

	if _, err := p.journeys.RecordClick(origin.BusinessID, origin.FlowID, event.FromPhone, label); err != nil {
		log.Printf("⚠️  Journey update failed for %s: %v", event.FromPhone, err)
	}

	req := &models.NextStepContext{
		BusinessID:      origin.BusinessID,
		FlowID:          origin.FlowID,
		FlowVersion:     1,
		SourceStepID:    origin.StepID,
		TargetStepID:    match.Link.NextStepID,
		ButtonIndex:     match.Index,
		ButtonLabel:     label,
		ContactPhone:    event.FromPhone,
		Provider:        origin.Provider,
		SenderID:        origin.SenderID,
		Link:            match.Link,
		OriginMessageID: origin.Message.ID,
		RunID:           runID,
	}

	// Eligibility gates every click-driven hop into a target step; an
	// ineligible step is treated as no step at all.
	if !match.Link.IsTerminal() {
		step, err := p.store.GetStep(*match.Link.NextStepID)
		if err == nil && !p.eligibility.Eligible(origin.BusinessID, event.FromPhone, step) {
			log.Printf("ℹ️  Contact %s not eligible for step %d, no follow-up", event.FromPhone, step.ID)
			return nil, nil
		}
		// A missing step falls through: the engine fails closed with a
		// descriptive, recorded result.
	}

	return p.engine.Execute(req), nil
}
