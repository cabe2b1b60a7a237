package latex

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Value is a node of a JSON-like tree: Mapping, Sequence, Text or Scalar.
// The set is closed; isValue keeps other packages from adding variants.
type Value interface {
	isValue()
}

// Field is one key of a Mapping.
type Field struct {
	Key   string
	Value Value
}

// Mapping is an object with its keys in document order.
type Mapping []Field

// Sequence is an ordered list of values.
type Sequence []Value

// Text is a string leaf.
type Text string

// Scalar is any non-string leaf, kept as its raw JSON literal.
type Scalar string

func (Mapping) isValue()  {}
func (Sequence) isValue() {}
func (Text) isValue()     {}
func (Scalar) isValue()   {}

// Get returns the value stored under key.
func (m Mapping) Get(key string) (v Value, ok bool) {
	for _, f := range m {
		if f.Key == key {
			v = f.Value
			ok = true
			return v, ok
		}
	}
	return v, ok
}

// FromJSON builds a value tree from raw JSON, keeping key order.
func FromJSON(raw []byte) (v Value, err error) {
	if !gjson.ValidBytes(raw) {
		err = errors.New("invalid JSON")
		return v, err
	}
	v = fromResult(gjson.ParseBytes(raw))
	return v, err
}

func fromResult(res gjson.Result) (v Value) {
	switch {
	case res.IsObject():
		m := Mapping{}
		res.ForEach(func(key, value gjson.Result) bool {
			m = append(m, Field{Key: key.String(), Value: fromResult(value)})
			return true
		})
		v = m
	case res.IsArray():
		s := Sequence{}
		res.ForEach(func(_, value gjson.Result) bool {
			s = append(s, fromResult(value))
			return true
		})
		v = s
	case res.Type == gjson.String:
		v = Text(res.Str)
	default:
		v = Scalar(res.Raw)
	}
	return v
}

// ToJSON encodes a value tree back to compact JSON.
func ToJSON(v Value) (raw []byte, err error) {
	var buf bytes.Buffer
	err = writeJSON(&buf, v)
	if err != nil {
		return raw, err
	}
	raw = buf.Bytes()
	return raw, err
}

func writeJSON(buf *bytes.Buffer, v Value) (err error) {
	switch node := v.(type) {
	case Mapping:
		buf.WriteByte('{')
		for i, f := range node {
			if i > 0 {
				buf.WriteByte(',')
			}
			err = writeString(buf, f.Key)
			if err != nil {
				return err
			}
			buf.WriteByte(':')
			err = writeJSON(buf, f.Value)
			if err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case Sequence:
		buf.WriteByte('[')
		for i, item := range node {
			if i > 0 {
				buf.WriteByte(',')
			}
			err = writeJSON(buf, item)
			if err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Text:
		err = writeString(buf, string(node))
	case Scalar:
		buf.WriteString(string(node))
	case nil:
		buf.WriteString("null")
	default:
		err = errors.Errorf("unsupported value type %T", v)
	}
	return err
}

func writeString(buf *bytes.Buffer, s string) (err error) {
	var encoded []byte
	encoded, err = json.Marshal(s)
	if err != nil {
		err = errors.Wrap(err, "failed to encode string")
		return err
	}
	buf.Write(encoded)
	return err
}
