package email

import (
	"encoding/json"
	"fmt"
)

// Recipients accepts either a comma-separated string or a list of strings
type Recipients []string

// UnmarshalJSON implements json.Unmarshaler
func (r *Recipients) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = Recipients{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("to must be a string or a list of strings")
	}
	*r = list
	return nil
}

// MarshalJSON writes a single entry as a plain string and anything else as
// a list
func (r Recipients) MarshalJSON() ([]byte, error) {
	if len(r) == 1 {
		return json.Marshal(r[0])
	}
	return json.Marshal([]string(r))
}

// SendRequest represents the request to email a summary
type SendRequest struct {
	To      Recipients `json:"to" validate:"required" swaggertype:"string" example:"alice@example.com, bob@example.com"`
	Subject string     `json:"subject" example:"Meeting Summary"`
	Body    string     `json:"body" validate:"notblank"`
}
