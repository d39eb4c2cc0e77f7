package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
)

// TwilioService sends WhatsApp templates through Twilio's content API.
// The sending identity's phone_number_id holds the whatsapp: number and
// the template name is the approved Content SID.
type TwilioService struct {
	client *twilio.RestClient
}

// NewTwilioService creates a new Twilio service instance
func NewTwilioService() (*TwilioService, error) {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	if accountSid == "" || authToken == "" {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	return &TwilioService{client: client}, nil
}

// SendTemplate sends a WhatsApp template message via Twilio. Failures
// are reported in the outcome, not raised.
func (t *TwilioService) SendTemplate(account *models.WabaAccount, req *models.TemplateRequest) *models.SendOutcome {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(fmt.Sprintf("whatsapp:%s", account.PhoneNumberID))
	params.SetTo(fmt.Sprintf("whatsapp:+%s", req.To))
	params.SetContentSid(req.TemplateName)

	if len(req.BodyParams) > 0 {
		variables := make(map[string]string, len(req.BodyParams))
		for i, v := range req.BodyParams {
			variables[strconv.Itoa(i+1)] = v
		}
		variablesJSON, err := json.Marshal(variables)
		if err != nil {
			return &models.SendOutcome{ErrorMessage: fmt.Sprintf("marshal content variables: %v", err)}
		}
		params.SetContentVariables(string(variablesJSON))
	}

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("❌ Twilio send failed: %v", err)
		return &models.SendOutcome{ErrorMessage: err.Error()}
	}
	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		msg := ""
		if resp.ErrorMessage != nil {
			msg = *resp.ErrorMessage
		}
		return &models.SendOutcome{
			ErrorMessage: fmt.Sprintf("twilio error %d: %s", *resp.ErrorCode, msg),
			RawResponse:  rawTwilioResponse(resp),
		}
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	log.Printf("✅ Twilio template sent! SID: %s", sid)
	return &models.SendOutcome{
		Success:           true,
		ProviderMessageID: sid,
		RawResponse:       rawTwilioResponse(resp),
	}
}

// SendImageTemplate sends an image-headed template. Twilio carries the
// media inside the approved content, so the request is the same wire
// call; the image URL rides along as a content variable.
func (t *TwilioService) SendImageTemplate(account *models.WabaAccount, req *models.TemplateRequest) *models.SendOutcome {
	return t.SendTemplate(account, req)
}

func rawTwilioResponse(resp *twilioApi.ApiV2010Message) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return ""
	}
	return string(data)
}
