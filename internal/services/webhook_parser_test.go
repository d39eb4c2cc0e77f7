package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const buttonClickBody = `{
  "entry": [{
    "changes": [{
      "value": {
        "contacts": [{"wa_id": "15550100", "profile": {"name": "Ada"}}],
        "messages": [{
          "from": "+1 555 0100",
          "type": "button",
          "button": {"text": "Yes", "payload": "Yes"},
          "context": {"id": "wamid.ORIG"}
        }]
      }
    }]
  }]
}`

const interactiveReplyBody = `{
  "entry": [{
    "changes": [{
      "value": {
        "messages": [{
          "from": "15550100",
          "type": "interactive",
          "interactive": {
            "type": "button_reply",
            "button_reply": {"id": "btn-0", "title": "Buy Now"}
          },
          "context": {"id": "wamid.ORIG"}
        }]
      }
    }]
  }]
}`

func firstMessage(t *testing.T, body string) (gjson.Result, gjson.Result) {
	t.Helper()
	var msg, contacts gjson.Result
	found := false
	EachMessage([]byte(body), func(m, c gjson.Result) {
		if !found {
			msg, contacts = m, c
			found = true
		}
	})
	require.True(t, found, "no message in body")
	return msg, contacts
}

func TestParseClickButtonMessage(t *testing.T) {
	msg, contacts := firstMessage(t, buttonClickBody)

	event, ok := ParseClick(msg, contacts)
	require.True(t, ok)
	assert.Equal(t, "15550100", event.FromPhone)
	assert.Equal(t, "Yes", event.Label)
	assert.Equal(t, "wamid.ORIG", event.ContextID)
	assert.Equal(t, "Ada", event.ProfileName)
}

func TestParseClickInteractiveReply(t *testing.T) {
	msg, contacts := firstMessage(t, interactiveReplyBody)

	event, ok := ParseClick(msg, contacts)
	require.True(t, ok)
	assert.Equal(t, "Buy Now", event.Label)
	assert.Empty(t, event.ProfileName) // no contacts array
}

func TestParseClickListReply(t *testing.T) {
	body := `{"entry":[{"changes":[{"value":{"messages":[{
		"from":"15550100","type":"interactive",
		"interactive":{"type":"list_reply","list_reply":{"id":"row-2","title":"Pricing"}},
		"context":{"id":"wamid.LIST"}}]}}]}]}`
	msg, contacts := firstMessage(t, body)

	event, ok := ParseClick(msg, contacts)
	require.True(t, ok)
	assert.Equal(t, "Pricing", event.Label)
	assert.Equal(t, "wamid.LIST", event.ContextID)
}

func TestParseClickSkipsNonClicks(t *testing.T) {
	cases := map[string]string{
		"plain text": `{"from":"15550100","type":"text","text":{"body":"hello"},"context":{"id":"wamid.X"}}`,
		"no context": `{"from":"15550100","type":"button","button":{"text":"Yes"}}`,
		"no sender":  `{"type":"button","button":{"text":"Yes"},"context":{"id":"wamid.X"}}`,
		"empty":      `{}`,
	}
	for name, raw := range cases {
		_, ok := ParseClick(gjson.Parse(raw), gjson.Result{})
		assert.False(t, ok, name)
	}
}

func TestEachMessagePreservesBatchOrder(t *testing.T) {
	body := `{"entry":[
		{"changes":[{"value":{"messages":[{"from":"1","type":"text"},{"from":"2","type":"text"}]}}]},
		{"changes":[{"value":{"messages":[{"from":"3","type":"text"}]}}]}
	]}`

	var order []string
	EachMessage([]byte(body), func(msg, _ gjson.Result) {
		order = append(order, msg.Get("from").String())
	})
	assert.Equal(t, []string{"1", "2", "3"}, order)
}

func TestEachMessageToleratesMalformedBody(t *testing.T) {
	count := 0
	EachMessage([]byte(`not json at all`), func(_, _ gjson.Result) { count++ })
	EachMessage([]byte(`{"entry":"nope"}`), func(_, _ gjson.Result) { count++ })
	assert.Zero(t, count)
}
