// Package corpus loads the message dump an awards ceremony was mined
// from. The pipeline itself only requires the text field; author and
// timestamp metadata are tolerated but never required.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ovationhq/ovation/pkg/ovation/internalerr"
)

// User is optional author metadata carried by some dumps.
type User struct {
	ID         int64  `json:"id,omitempty"`
	ScreenName string `json:"screen_name,omitempty"`
}

// Message is the immutable input unit of one mining run.
type Message struct {
	ID          int64  `json:"id,omitempty"`
	Text        string `json:"text"`
	User        *User  `json:"user,omitempty"`
	TimestampMS string `json:"timestamp_ms,omitempty"`
}

// Validate reports whether the record carries the one required field.
func (m *Message) Validate() error {
	if strings.TrimSpace(m.Text) == "" {
		return fmt.Errorf("%w: message text is required", internalerr.ErrInvalidInput)
	}
	return nil
}

// IsRetweet reports whether the message is a repost ("rt @" prefix).
func (m *Message) IsRetweet() bool {
	return strings.HasPrefix(strings.ToLower(m.Text), "rt @")
}

// IsQuote reports whether the message opens by quoting another account
// (curly open quote immediately followed by a mention).
func (m *Message) IsQuote() bool {
	return strings.HasPrefix(m.Text, "“@")
}

// LoadJSON streams a JSON array of message records. A record without a
// text field is a fatal input error; the loader does not attempt
// partial recovery.
func LoadJSON(r io.Reader) ([]Message, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("read corpus: expected JSON array, got %v", tok)
	}

	var msgs []Message
	for dec.More() {
		var m Message
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode record %d: %w", len(msgs), err)
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", len(msgs), err)
		}
		msgs = append(msgs, m)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return msgs, nil
}

// LoadJSONL reads one message record per line.
func LoadJSONL(r io.Reader) ([]Message, error) {
	var msgs []Message
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var m Message
		if err := json.Unmarshal([]byte(text), &m); err != nil {
			return nil, fmt.Errorf("decode line %d: %w", line, err)
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		msgs = append(msgs, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return msgs, nil
}

// LoadFile loads a corpus from disk, picking the format by extension
// (.jsonl for line-delimited, JSON array otherwise).
func LoadFile(path string) ([]Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".jsonl") {
		return LoadJSONL(f)
	}
	return LoadJSON(f)
}
