package services

import (
	"github.com/tidwall/gjson"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/utils"
)

// ParseClick extracts a normalized button click from one message record
// of a provider delivery batch. contacts is the batch's parallel
// contacts array, used only to pick up the sender's display name.
//
// A false return means the record is not a click (a plain text message,
// a status update, a reply without a context id). That is a skip, not
// an error. Every nested field access tolerates absence.
func ParseClick(msg, contacts gjson.Result) (models.ClickEvent, bool) {
	var event models.ClickEvent

	event.FromPhone = utils.NormalizePhone(msg.Get("from").String())
	if event.FromPhone == "" {
		return event, false
	}

	// Clicks always reference the message whose button was pressed.
	event.ContextID = msg.Get("context.id").String()
	if event.ContextID == "" {
		return event, false
	}

	switch msg.Get("type").String() {
	case "button":
		event.Label = msg.Get("button.text").String()
		if event.Label == "" {
			event.Label = msg.Get("button.payload").String()
		}
	case "interactive":
		switch msg.Get("interactive.type").String() {
		case "button_reply":
			event.Label = msg.Get("interactive.button_reply.title").String()
		case "list_reply":
			event.Label = msg.Get("interactive.list_reply.title").String()
		}
	}
	if event.Label == "" {
		return event, false
	}

	event.ProfileName = profileNameFor(contacts, event.FromPhone)
	return event, true
}

// profileNameFor finds the display name for a sender in the contacts
// array, matching on wa_id; falls back to the first entry.
func profileNameFor(contacts gjson.Result, phone string) string {
	name := ""
	contacts.ForEach(func(_, c gjson.Result) bool {
		if utils.NormalizePhone(c.Get("wa_id").String()) == phone {
			name = c.Get("profile.name").String()
			return false
		}
		if name == "" {
			name = c.Get("profile.name").String()
		}
		return true
	})
	return name
}

// EachMessage walks a raw webhook body and yields every message record
// together with its change-level contacts array, preserving batch
// order.
func EachMessage(body []byte, fn func(msg, contacts gjson.Result)) {
	gjson.GetBytes(body, "entry").ForEach(func(_, entry gjson.Result) bool {
		entry.Get("changes").ForEach(func(_, change gjson.Result) bool {
			value := change.Get("value")
			contacts := value.Get("contacts")
			value.Get("messages").ForEach(func(_, msg gjson.Result) bool {
				fn(msg, contacts)
				return true
			})
			return true
		})
		return true
	})
}
