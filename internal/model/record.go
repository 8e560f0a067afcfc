package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Record is a JSON object that remembers the order its keys were decoded in.
// Nested objects decode to *Record, arrays to []interface{} and numbers to float64.
type Record struct {
	keys   []string
	values map[string]interface{}
}

// Product is one IFC element as exported by bimsync: attributes, propertySets,
// quantitySets and ifcType. The takeoff engine never mutates products.
type Product = Record

// NewRecord creates an empty record
func NewRecord() *Record {
	return &Record{
		keys:   make([]string, 0),
		values: make(map[string]interface{}),
	}
}

// RecordFromMap converts a plain map (and any nested maps) into a Record.
// Go maps carry no order, so keys are inserted sorted.
func RecordFromMap(m map[string]interface{}) *Record {
	rec := NewRecord()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rec.Set(k, fromPlain(m[k]))
	}
	return rec
}

func fromPlain(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return RecordFromMap(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = fromPlain(item)
		}
		return out
	default:
		return v
	}
}

// Set adds or updates a key. Updating keeps the original position.
func (r *Record) Set(key string, value interface{}) {
	if r.values == nil {
		r.values = make(map[string]interface{})
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get retrieves a value by key
func (r *Record) Get(key string) (interface{}, bool) {
	if r == nil {
		return nil, false
	}
	val, exists := r.values[key]
	return val, exists
}

// Keys returns all keys in decode order
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	result := make([]string, len(r.keys))
	copy(result, r.keys)
	return result
}

// Len returns the number of keys
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Object returns the nested record stored under key, or nil.
func (r *Record) Object(key string) *Record {
	v, _ := r.Get(key)
	rec, _ := v.(*Record)
	return rec
}

func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record: expected JSON object, got %v", tok)
	}
	rec, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*r = *rec
	return nil
}

func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeObject reads key/value pairs up to and including the closing brace.
// The opening brace must already have been consumed.
func decodeObject(dec *json.Decoder) (*Record, error) {
	rec := NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("record: expected object key, got %v", tok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		rec.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeArray(dec *json.Decoder) ([]interface{}, error) {
	items := make([]interface{}, 0)
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		// float64, string, bool or nil
		return tok, nil
	}
	switch delim {
	case '{':
		return decodeObject(dec)
	case '[':
		return decodeArray(dec)
	default:
		return nil, fmt.Errorf("record: unexpected delimiter %v", delim)
	}
}
