package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
)

// MetaCloudService sends WhatsApp templates through the Meta Cloud API
// (graph.facebook.com). Each sending identity carries its own phone
// number id and access token.
type MetaCloudService struct {
	httpClient *http.Client
	baseURL    string
	apiVersion string
}

// NewMetaCloudService creates a new Meta Cloud API service instance
func NewMetaCloudService() *MetaCloudService {
	apiVersion := os.Getenv("META_API_VERSION")
	if apiVersion == "" {
		apiVersion = "v19.0"
	}
	baseURL := os.Getenv("META_BASE_URL")
	if baseURL == "" {
		baseURL = "https://graph.facebook.com"
	}
	return &MetaCloudService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiVersion: apiVersion,
	}
}

type metaComponent struct {
	Type       string          `json:"type"`
	Parameters []metaParameter `json:"parameters"`
}

type metaParameter struct {
	Type  string     `json:"type"`
	Text  string     `json:"text,omitempty"`
	Image *metaImage `json:"image,omitempty"`
}

type metaImage struct {
	Link string `json:"link"`
}

type metaTemplatePayload struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Template         metaTemplate `json:"template"`
}

type metaTemplate struct {
	Name       string          `json:"name"`
	Language   metaLanguage    `json:"language"`
	Components []metaComponent `json:"components,omitempty"`
}

type metaLanguage struct {
	Code string `json:"code"`
}

// SendTemplate sends a text template. Failures are reported in the
// outcome, not raised; the raw provider response is always captured.
func (s *MetaCloudService) SendTemplate(account *models.WabaAccount, req *models.TemplateRequest) *models.SendOutcome {
	payload := s.buildPayload(req, "")
	return s.post(account, payload)
}

// SendImageTemplate sends a template with an image header.
func (s *MetaCloudService) SendImageTemplate(account *models.WabaAccount, req *models.TemplateRequest) *models.SendOutcome {
	payload := s.buildPayload(req, req.ImageURL)
	return s.post(account, payload)
}

func (s *MetaCloudService) buildPayload(req *models.TemplateRequest, imageURL string) *metaTemplatePayload {
	var components []metaComponent

	if imageURL != "" {
		components = append(components, metaComponent{
			Type:       "header",
			Parameters: []metaParameter{{Type: "image", Image: &metaImage{Link: imageURL}}},
		})
	}
	if len(req.BodyParams) > 0 {
		params := make([]metaParameter, 0, len(req.BodyParams))
		for _, p := range req.BodyParams {
			params = append(params, metaParameter{Type: "text", Text: p})
		}
		components = append(components, metaComponent{Type: "body", Parameters: params})
	}

	language := req.Language
	if language == "" {
		language = "en"
	}
	return &metaTemplatePayload{
		MessagingProduct: "whatsapp",
		To:               req.To,
		Type:             "template",
		Template: metaTemplate{
			Name:       req.TemplateName,
			Language:   metaLanguage{Code: language},
			Components: components,
		},
	}
}

func (s *MetaCloudService) post(account *models.WabaAccount, payload *metaTemplatePayload) *models.SendOutcome {
	body, err := json.Marshal(payload)
	if err != nil {
		return &models.SendOutcome{ErrorMessage: fmt.Sprintf("marshal payload: %v", err)}
	}

	apiVersion := account.ApiVersion
	if apiVersion == "" {
		apiVersion = s.apiVersion
	}
	url := fmt.Sprintf("%s/%s/%s/messages", s.baseURL, apiVersion, account.PhoneNumberID)

	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &models.SendOutcome{ErrorMessage: fmt.Sprintf("build request: %v", err)}
	}
	httpReq.Header.Set("Authorization", "Bearer "+account.AccessToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		log.Printf("❌ Meta Cloud API send failed: %v", err)
		return &models.SendOutcome{ErrorMessage: err.Error()}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	outcome := &models.SendOutcome{RawResponse: string(raw)}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome.ErrorMessage = gjson.GetBytes(raw, "error.message").String()
		if outcome.ErrorMessage == "" {
			outcome.ErrorMessage = fmt.Sprintf("meta cloud api returned status %d", resp.StatusCode)
		}
		return outcome
	}

	outcome.Success = true
	outcome.ProviderMessageID = gjson.GetBytes(raw, "messages.0.id").String()
	log.Printf("✅ Meta template sent! ID: %s", outcome.ProviderMessageID)
	return outcome
}
