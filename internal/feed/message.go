package feed

import (
	"bytes"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/fkcurrie/keyled/internal/colors"
	"github.com/fkcurrie/keyled/internal/types"
)

// ParseMessage parses a feed message. A JSON object is read as
//
//	{"text": "hello", "color": "#00FF00"}
//
// where color is optional. Anything else is taken as plain text.
func ParseMessage(data []byte) (types.Message, error) {
	msg := types.Message{Received: time.Now()}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' || !gjson.ValidBytes(trimmed) {
		msg.Text = string(bytes.TrimRight(data, "\r\n"))
		return msg, nil
	}

	text := gjson.GetBytes(trimmed, "text")
	if !text.Exists() {
		return msg, fmt.Errorf("message has no text field")
	}
	if text.Type != gjson.String {
		return msg, fmt.Errorf("text field is %s, want string", text.Type)
	}
	msg.Text = text.String()

	if c := gjson.GetBytes(trimmed, "color"); c.Exists() {
		t, err := colors.Decode(c.String())
		if err != nil {
			return msg, fmt.Errorf("invalid message color: %w", err)
		}
		msg.Color = &t
	}
	return msg, nil
}
