package model

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Link is a saved URL of the link list.
type Link struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// UnmarshalJSON accepts numeric ids as written by the browser version of the
// link list (Date.now() values) and keeps them as decimal strings.
func (l *Link) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID  json.RawMessage `json:"id"`
		URL string          `json:"url"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	l.URL = raw.URL
	l.ID = ""
	id := bytes.TrimSpace(raw.ID)
	switch {
	case len(id) == 0 || bytes.Equal(id, []byte("null")):
	case id[0] == '"':
		return json.Unmarshal(id, &l.ID)
	default:
		var n json.Number
		if err := json.Unmarshal(id, &n); err != nil {
			return fmt.Errorf("link id: %w", err)
		}
		l.ID = n.String()
	}
	return nil
}
