package posts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePayload(t *testing.T, raw string) map[string]json.RawMessage {
	t.Helper()
	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return payload
}

func TestValidatePostPayload(t *testing.T) {
	for name, tc := range map[string]struct {
		payload     string
		wantMessage string
	}{
		"valid": {
			payload: `{"title": "a title", "body": "a body"}`,
		},
		"valid with extra properties": {
			payload: `{"title": "a title", "body": "a body", "likes": 7}`,
		},
		"empty": {
			payload:     `{}`,
			wantMessage: "'title' is a required property",
		},
		"title missing": {
			payload:     `{"body": "a body"}`,
			wantMessage: "'title' is a required property",
		},
		"body missing": {
			payload:     `{"title": "a title"}`,
			wantMessage: "'body' is a required property",
		},
		"missing wins over wrong type": {
			payload:     `{"body": 13}`,
			wantMessage: "'title' is a required property",
		},
		"number body": {
			payload:     `{"title": "a title", "body": 32}`,
			wantMessage: "32 is not of type 'string'",
		},
		"float body": {
			payload:     `{"title": "a title", "body": 3.14}`,
			wantMessage: "3.14 is not of type 'string'",
		},
		"bool title": {
			payload:     `{"title": true, "body": "a body"}`,
			wantMessage: "true is not of type 'string'",
		},
		"null title": {
			payload:     `{"title": null, "body": "a body"}`,
			wantMessage: "null is not of type 'string'",
		},
		"array body rendered compact": {
			payload:     `{"title": "a title", "body": [1,  "two" ]}`,
			wantMessage: `[1,"two"] is not of type 'string'`,
		},
		"object body": {
			payload:     `{"title": "a title", "body": {"nested": 1}}`,
			wantMessage: `{"nested":1} is not of type 'string'`,
		},
		"title checked before body": {
			payload:     `{"title": 1, "body": 2}`,
			wantMessage: "1 is not of type 'string'",
		},
	} {
		t.Run(name, func(t *testing.T) {
			err := ValidatePostPayload(decodePayload(t, tc.payload))
			if tc.wantMessage == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.wantMessage, validationErr.Message)
		})
	}
}
