package chat

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrEmptyTranscript is returned when a transcript holds no messages.
var ErrEmptyTranscript = errors.New("transcript has no messages")

// record is the wire form of a transcript entry.
type record struct {
	ID             string `json:"id,omitempty"`
	Role           string `json:"role"`
	Content        string `json:"content"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// DecodeTranscript reads either a JSON array of messages or one JSON object
// per line. Entries without an id get a fresh one.
func DecodeTranscript(r io.Reader) ([]Message, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyTranscript
	}

	var records []record
	if data[0] == '[' {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode transcript: %w", err)
		}
	} else {
		records, err = decodeLines(data)
		if err != nil {
			return nil, err
		}
	}
	if len(records) == 0 {
		return nil, ErrEmptyTranscript
	}

	out := make([]Message, 0, len(records))
	for _, rec := range records {
		m := NewMessage(ParseRole(rec.Role), rec.Content, rec.ConversationID)
		m.RawRole = rec.Role
		if rec.ID != "" {
			id, err := parseID(rec.ID)
			if err != nil {
				return nil, fmt.Errorf("message %d: %w", len(out), err)
			}
			m.ID = id
		}
		out = append(out, m)
	}
	return out, nil
}

func decodeLines(data []byte) ([]record, error) {
	var records []record
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var rec record
		if err := json.Unmarshal(b, &rec); err != nil {
			return nil, fmt.Errorf("decode transcript line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan transcript: %w", err)
	}
	return records, nil
}
