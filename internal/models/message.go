package models

import (
	"encoding/json"
	"time"
)

// Message is a single member message as returned by the remote messages API.
// Messages are immutable once fetched; a whole snapshot is replaced on refresh.
type Message struct {
	ID        string `json:"id"`
	UserName  string `json:"user_name"`
	Timestamp string `json:"timestamp"`
	Body      string `json:"message"`

	// Metadata holds any additional fields the remote source attaches to a
	// message. The wire format is not under our control, so unknown keys are
	// preserved rather than dropped.
	Metadata map[string]json.RawMessage `json:"-"`
}

// timestampFormats are tried in order when parsing Message.Timestamp.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Time parses the message timestamp. Returns the zero time when the
// timestamp is absent or unparseable; callers sort such messages first.
func (m Message) Time() time.Time {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, m.Timestamp); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Before orders messages chronologically. Equal parsed times fall back to the
// raw timestamp string and then the ID so ordering is deterministic.
func (m Message) Before(other Message) bool {
	mt, ot := m.Time(), other.Time()
	if !mt.Equal(ot) {
		return mt.Before(ot)
	}
	if m.Timestamp != other.Timestamp {
		return m.Timestamp < other.Timestamp
	}
	return m.ID < other.ID
}

// UnmarshalJSON decodes the known fields and captures everything else into
// Metadata.
func (m *Message) UnmarshalJSON(data []byte) error {
	type alias Message
	var known alias
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	delete(raw, "id")
	delete(raw, "user_name")
	delete(raw, "timestamp")
	delete(raw, "message")

	*m = Message(known)
	if len(raw) > 0 {
		m.Metadata = raw
	}
	return nil
}

// MessagePage is one page of messages plus the continuation marker for the
// next page. An empty NextToken means there are no further pages. Pages are
// transient; the fetch loop consumes them immediately.
type MessagePage struct {
	Messages  []Message
	NextToken string
}
