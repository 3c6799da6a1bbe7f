package model

import (
	"bytes"
	"sort"

	"github.com/goccy/go-json"
)

// objectWriter emits a JSON object with keys in insertion order.
type objectWriter struct {
	buf    bytes.Buffer
	fields int
}

func newObjectWriter() *objectWriter {
	w := &objectWriter{}
	w.buf.WriteByte('{')
	return w
}

// field marshals value under key.
func (w *objectWriter) field(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return w.raw(key, encoded)
}

// raw writes an already encoded value under key.
func (w *objectWriter) raw(key string, value []byte) error {
	name, err := json.Marshal(key)
	if err != nil {
		return err
	}
	if w.fields > 0 {
		w.buf.WriteByte(',')
	}
	w.buf.Write(name)
	w.buf.WriteByte(':')
	w.buf.Write(value)
	w.fields++
	return nil
}

// stringOrRaw writes the raw value kept for key when there is one, otherwise
// the string value.
func (w *objectWriter) stringOrRaw(key, value string, extra map[string]json.RawMessage) error {
	if raw, ok := extra[key]; ok {
		return w.raw(key, raw)
	}
	return w.field(key, value)
}

// extras writes preserved keys sorted by name, skipping those in written.
func (w *objectWriter) extras(extra map[string]json.RawMessage, written map[string]bool) error {
	keys := make([]string, 0, len(extra))
	for key := range extra {
		if written[key] {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := w.raw(key, extra[key]); err != nil {
			return err
		}
	}
	return nil
}

func (w *objectWriter) bytes() []byte {
	w.buf.WriteByte('}')
	return w.buf.Bytes()
}

// compactRaw returns value without insignificant whitespace so that preserved
// fields compare equal after an indent/parse cycle.
func compactRaw(value json.RawMessage) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, value); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}

// decodeString decodes a JSON string into dst, treating null as empty. A value
// of any other type leaves dst empty and is kept verbatim in extra under key.
func decodeString(key string, value json.RawMessage, dst *string, extra *map[string]json.RawMessage) error {
	*dst = ""
	if isNull(value) {
		return nil
	}
	if firstByte(value) == '"' {
		return json.Unmarshal(value, dst)
	}
	return keepRaw(extra, key, value)
}

// keepRaw stores the compacted value under key, allocating the map as needed.
func keepRaw(extra *map[string]json.RawMessage, key string, value json.RawMessage) error {
	compact, err := compactRaw(value)
	if err != nil {
		return err
	}
	if *extra == nil {
		*extra = make(map[string]json.RawMessage)
	}
	(*extra)[key] = compact
	return nil
}

// firstByte returns the first non-space byte of value, or 0.
func firstByte(value json.RawMessage) byte {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
