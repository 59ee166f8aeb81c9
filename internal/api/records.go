package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// --- Tagged Values ---

// ValueKind tags the dynamic type of a server value.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueText
	ValueNumber
	ValueBool
	ValueObject
	ValueList
)

// Value is one server field value. Exactly one payload field is meaningful,
// selected by Kind.
type Value struct {
	Kind   ValueKind
	Text   string
	Number json.Number
	Bool   bool
	Object *Object
	List   []Value
}

// Text builds a text value.
func Text(s string) Value { return Value{Kind: ValueText, Text: s} }

// Number builds a numeric value.
func Number(n string) Value { return Value{Kind: ValueNumber, Number: json.Number(n)} }

// Bool builds a boolean value.
func Bool(b bool) Value { return Value{Kind: ValueBool, Bool: b} }

// List builds a sequence value.
func List(items ...Value) Value { return Value{Kind: ValueList, List: items} }

// ObjectValue wraps an object.
func ObjectValue(o *Object) Value { return Value{Kind: ValueObject, Object: o} }

// IsEmpty reports null, empty text, and empty sequences.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case ValueNull:
		return true
	case ValueText:
		return v.Text == ""
	case ValueList:
		return len(v.List) == 0
	case ValueObject:
		return v.Object == nil || v.Object.Len() == 0
	}
	return false
}

// String renders the value as plain text. Objects render as compact JSON.
func (v Value) String() string {
	switch v.Kind {
	case ValueText:
		return v.Text
	case ValueNumber:
		return v.Number.String()
	case ValueBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValueList:
		parts := make([]string, 0, len(v.List))
		for _, item := range v.List {
			parts = append(parts, item.String())
		}
		return strings.Join(parts, ", ")
	case ValueObject:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
	return ""
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	parsed, err := readValue(dec)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueText:
		return json.Marshal(v.Text)
	case ValueNumber:
		if v.Number == "" {
			return []byte("0"), nil
		}
		return []byte(v.Number), nil
	case ValueBool:
		return json.Marshal(v.Bool)
	case ValueList:
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	case ValueObject:
		if v.Object == nil {
			return []byte("{}"), nil
		}
		return v.Object.MarshalJSON()
	}
	return []byte("null"), nil
}

func readValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				item, err := readValue(dec)
				if err != nil {
					return Value{}, err
				}
				obj.Set(key, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return ObjectValue(obj), nil
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := readValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return List(items...), nil
		}
		return Value{}, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return Text(t), nil
	case json.Number:
		return Value{Kind: ValueNumber, Number: t}, nil
	case bool:
		return Bool(t), nil
	case nil:
		return Value{}, nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

// --- Ordered Objects ---

// Object is a JSON object that remembers the server's key order.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set stores a value, appending the key on first use.
func (o *Object) Set(key string, v Value) {
	if o.values == nil {
		o.values = make(map[string]Value)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Keys returns keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Clone returns a shallow copy safe to mutate with Set.
func (o *Object) Clone() *Object {
	out := NewObject()
	if o == nil {
		return out
	}
	for _, k := range o.keys {
		out.Set(k, o.values[k])
	}
	return out
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range o.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// --- Records ---

// Record is one server-owned resource as an ordered field set.
// Group is set when the list endpoint returns records keyed by category.
type Record struct {
	Fields *Object
	Group  string
}

// NewRecord builds a record from alternating key/value pairs.
func NewRecord(pairs ...any) Record {
	obj := NewObject()
	for i := 0; i+1 < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case Value:
			obj.Set(key, v)
		case string:
			obj.Set(key, Text(v))
		case bool:
			obj.Set(key, Bool(v))
		case int:
			obj.Set(key, Number(fmt.Sprint(v)))
		case nil:
			obj.Set(key, Value{})
		default:
			obj.Set(key, Text(fmt.Sprint(v)))
		}
	}
	return Record{Fields: obj}
}

// Get returns a field value.
func (r Record) Get(key string) (Value, bool) {
	return r.Fields.Get(key)
}

// Text returns the plain text form of a field, or "".
func (r Record) Text(key string) string {
	v, ok := r.Get(key)
	if !ok {
		return ""
	}
	return v.String()
}

// ID returns the record identifier (_id, falling back to id).
func (r Record) ID() string {
	if id := r.Text("_id"); id != "" {
		return id
	}
	return r.Text("id")
}

// With returns a copy of the record with one field replaced.
func (r Record) With(key string, v Value) Record {
	fields := r.Fields.Clone()
	fields.Set(key, v)
	return Record{Fields: fields, Group: r.Group}
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	if v.Kind != ValueObject {
		return fmt.Errorf("record must be an object")
	}
	r.Fields = v.Object
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	if r.Fields == nil {
		return []byte("{}"), nil
	}
	return r.Fields.MarshalJSON()
}

// recordsFromData converts a list payload into records. A missing payload is
// an empty list; an object of arrays is flattened group by group in key order.
func recordsFromData(data Value) ([]Record, error) {
	switch data.Kind {
	case ValueNull:
		return []Record{}, nil
	case ValueList:
		return recordsFromList(data.List, "")
	case ValueObject:
		out := []Record{}
		for _, group := range data.Object.Keys() {
			items, _ := data.Object.Get(group)
			if items.Kind != ValueList {
				return nil, fmt.Errorf("group %q is not a list", group)
			}
			recs, err := recordsFromList(items.List, group)
			if err != nil {
				return nil, err
			}
			out = append(out, recs...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unexpected data payload")
}

func recordsFromList(items []Value, group string) ([]Record, error) {
	out := make([]Record, 0, len(items))
	for i, item := range items {
		if item.Kind != ValueObject {
			return nil, fmt.Errorf("item %d is not an object", i)
		}
		out = append(out, Record{Fields: item.Object, Group: group})
	}
	return out, nil
}
