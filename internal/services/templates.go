package services

import (
	"errors"
	"fmt"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/storage"
)

// TemplateCatalog resolves outbound template metadata: language, body
// placeholder count and approval status.
type TemplateCatalog interface {
	GetTemplateMeta(businessID uint, name string) (*models.TemplateMeta, error)
}

// TemplateService is the store-backed catalog. Rows are synced from the
// provider outside this engine; UpsertMeta exists for manual syncs.
type TemplateService struct {
	store storage.Store
}

// NewTemplateService creates a new template service
func NewTemplateService(store storage.Store) *TemplateService {
	return &TemplateService{store: store}
}

// GetTemplateMeta returns the cached metadata for a business template.
func (t *TemplateService) GetTemplateMeta(businessID uint, name string) (*models.TemplateMeta, error) {
	meta, err := t.store.GetTemplateMeta(businessID, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("template %q not found for business %d", name, businessID)
		}
		return nil, err
	}
	return meta, nil
}

// UpsertMeta inserts or refreshes one template row.
func (t *TemplateService) UpsertMeta(meta *models.TemplateMeta) error {
	if meta.Name == "" {
		return fmt.Errorf("template name is required")
	}
	return t.store.UpsertTemplateMeta(meta)
}
