package services

import (
	"errors"
	"fmt"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/storage"
)

// ResolvedSender is the (provider, sending identity) pair an outbound
// message goes out on.
type ResolvedSender struct {
	Provider string
	Account  *models.WabaAccount
}

// SenderResolver picks the sending identity for an execution request
// via a cascading fallback chain; the first fully resolved pair wins.
// Running out of fallbacks is a configuration error, never a guess.
type SenderResolver struct {
	store storage.Store
}

// NewSenderResolver creates a new sender resolver
func NewSenderResolver(store storage.Store) *SenderResolver {
	return &SenderResolver{store: store}
}

// Resolve applies the chain:
//  1. the provider/sender explicitly carried on the request (inherited
//     from the origin, so replies stay on the same account);
//  2. the business's active default settings row, when the explicit
//     provider is absent or not a recognized identifier;
//  3. any active sending identity under the resolved provider,
//     preferring the default-flagged row, tie-broken by row id.
func (r *SenderResolver) Resolve(req *models.NextStepContext) (*ResolvedSender, error) {
	provider := req.Provider
	if !models.IsKnownProvider(provider) {
		settings, err := r.store.GetActiveSettings(req.BusinessID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("no provider configured for business %d", req.BusinessID)
			}
			return nil, err
		}
		provider = settings.DefaultProvider
	}
	if !models.IsKnownProvider(provider) {
		return nil, fmt.Errorf("unknown provider %q for business %d", provider, req.BusinessID)
	}

	accounts, err := r.store.ListActiveWabaAccounts(req.BusinessID, provider)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("no active %s sender for business %d", provider, req.BusinessID)
	}

	// An explicit sender id on the request pins the exact account when
	// it is still active.
	if req.SenderID != "" {
		for _, a := range accounts {
			if a.PhoneNumberID == req.SenderID {
				return &ResolvedSender{Provider: provider, Account: a}, nil
			}
		}
	}

	// ListActiveWabaAccounts orders default-first, id ascending.
	return &ResolvedSender{Provider: provider, Account: accounts[0]}, nil
}
