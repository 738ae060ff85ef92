package posts

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// postSchema lists the required properties of a post payload, in the order
// they are validated. Every one of them must hold a JSON string.
var postSchema = []string{"title", "body"}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidatePostPayload checks a decoded post payload against the fixed post
// schema. Rules run in property declaration order, presence before type, and
// the first broken rule decides the reported message. Unknown extra
// properties are ignored.
func ValidatePostPayload(payload map[string]json.RawMessage) error {
	for _, property := range postSchema {
		rawValue, ok := payload[property]
		if !ok {
			return &ValidationError{Message: fmt.Sprintf("'%s' is a required property", property)}
		}
		if !isJSONString(rawValue) {
			return &ValidationError{Message: fmt.Sprintf("%s is not of type 'string'", compactJSON(rawValue))}
		}
	}
	return nil
}

func isJSONString(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '"'
}

// compactJSON renders a raw JSON value the way it appeared on the wire,
// stripped of insignificant whitespace.
func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(bytes.TrimSpace(raw))
	}
	return buf.String()
}
