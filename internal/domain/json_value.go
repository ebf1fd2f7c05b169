package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// JSONKind tags the variant held by a JSONValue
type JSONKind int

const (
	JSONNull JSONKind = iota
	JSONBool
	JSONNumber
	JSONString
	JSONArray
	JSONObject
)

func (k JSONKind) String() string {
	switch k {
	case JSONNull:
		return "null"
	case JSONBool:
		return "bool"
	case JSONNumber:
		return "number"
	case JSONString:
		return "string"
	case JSONArray:
		return "array"
	case JSONObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// JSONValue is a workflow reply payload of unknown shape.
// Object members keep the order they had on the wire.
type JSONValue struct {
	Kind    JSONKind
	Bool    bool
	Number  json.Number
	String  string
	Array   []JSONValue
	Members []JSONMember
}

// JSONMember is one key/value pair of a JSON object
type JSONMember struct {
	Key   string
	Value JSONValue
}

// Constructors used by tests and adapters

func NullValue() JSONValue { return JSONValue{Kind: JSONNull} }
func BoolValue(b bool) JSONValue { return JSONValue{Kind: JSONBool, Bool: b} }
func NumberValue(n string) JSONValue { return JSONValue{Kind: JSONNumber, Number: json.Number(n)} }
func StringValue(s string) JSONValue { return JSONValue{Kind: JSONString, String: s} }
func ArrayValue(v ...JSONValue) JSONValue { return JSONValue{Kind: JSONArray, Array: v} }
func ObjectValue(m ...JSONMember) JSONValue {
	return JSONValue{Kind: JSONObject, Members: m}
}

// MaxNestingDepth bounds how deeply arrays and objects may nest in a parsed document
const MaxNestingDepth = 10000

// ErrNestingTooDeep is returned for documents nested past MaxNestingDepth
var ErrNestingTooDeep = errors.New("json: exceeded max nesting depth")

// ParseJSONValue decodes exactly one JSON document.
// Trailing data after the document is an error.
func ParseJSONValue(data []byte) (JSONValue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec, 0)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return JSONValue{}, io.ErrUnexpectedEOF
		}
		return JSONValue{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return JSONValue{}, fmt.Errorf("invalid character after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, depth int) (JSONValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return JSONValue{}, err
	}

	switch t := tok.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return JSONValue{Kind: JSONNumber, Number: t}, nil
	case string:
		return StringValue(t), nil
	case json.Delim:
		if depth >= MaxNestingDepth {
			return JSONValue{}, ErrNestingTooDeep
		}
		switch t {
		case '[':
			items := make([]JSONValue, 0)
			for dec.More() {
				item, err := decodeValue(dec, depth+1)
				if err != nil {
					return JSONValue{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return JSONValue{}, err
			}
			return JSONValue{Kind: JSONArray, Array: items}, nil
		case '{':
			members := make([]JSONMember, 0)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return JSONValue{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return JSONValue{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				value, err := decodeValue(dec, depth+1)
				if err != nil {
					return JSONValue{}, err
				}
				members = append(members, JSONMember{Key: key, Value: value})
			}
			if _, err := dec.Token(); err != nil {
				return JSONValue{}, err
			}
			return JSONValue{Kind: JSONObject, Members: members}, nil
		}
	}
	return JSONValue{}, fmt.Errorf("unexpected token %v", tok)
}

// UnmarshalJSON implements json.Unmarshaler
func (v *JSONValue) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSONValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Get returns the value bound to key in an object.
// Duplicate keys resolve to the last occurrence.
func (v JSONValue) Get(key string) (JSONValue, bool) {
	if v.Kind != JSONObject {
		return JSONValue{}, false
	}
	for i := len(v.Members) - 1; i >= 0; i-- {
		if v.Members[i].Key == key {
			return v.Members[i].Value, true
		}
	}
	return JSONValue{}, false
}

// Truthy reports whether the value is non-empty:
// false, null, zero, "" and empty containers are falsy.
func (v JSONValue) Truthy() bool {
	switch v.Kind {
	case JSONBool:
		return v.Bool
	case JSONNumber:
		f, err := v.Number.Float64()
		return err != nil || f != 0
	case JSONString:
		return v.String != ""
	case JSONArray:
		return len(v.Array) > 0
	case JSONObject:
		return len(v.Members) > 0
	default:
		return false
	}
}

// MarshalJSON writes compact JSON preserving member order
func (v JSONValue) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Text renders the value for display: strings verbatim, anything else as compact JSON
func (v JSONValue) Text() (string, error) {
	if v.Kind == JSONString {
		return v.String, nil
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (v JSONValue) writeJSON(buf *bytes.Buffer) error {
	switch v.Kind {
	case JSONNull:
		buf.WriteString("null")
	case JSONBool:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case JSONNumber:
		if v.Number == "" {
			buf.WriteString("0")
		} else {
			buf.WriteString(v.Number.String())
		}
	case JSONString:
		return writeJSONString(buf, v.String)
	case JSONArray:
		buf.WriteByte('[')
		for i, item := range v.Array {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case JSONObject:
		buf.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := m.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode JSON value of %s", v.Kind)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}
