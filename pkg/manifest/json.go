// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// indent is the pretty-print indentation unit.
const indent = "    "

// Object is the ordered attribute map backing a manifest and any nested JSON object in it.
type Object = orderedmap.OrderedMap[string, any]

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return orderedmap.New[string, any]()
}

// literals maps a decoded string to the escaped form it was read in, for
// strings whose source spelling differs from what encoding/json writes
// (e.g. "a\/b" or "\u00e9"). Encoding reuses the source spelling.
type literals map[string]string

// decodeObject parses data into an ordered object. Numbers are kept as
// json.Number so integers and decimals are written back exactly as read.
func decodeObject(data []byte) (*Object, literals, error) {
	d := &decoder{
		dec:  json.NewDecoder(bytes.NewReader(data)),
		data: data,
		lits: literals{},
	}
	d.dec.UseNumber()

	v, err := d.value()
	if err != nil {
		return nil, nil, err
	}

	obj, ok := v.(*Object)
	if !ok {
		return nil, nil, fmt.Errorf("top-level value must be an object, got %T", v)
	}

	if _, err := d.dec.Token(); !errors.Is(err, io.EOF) {
		return nil, nil, errors.New("unexpected data after top-level object")
	}

	return obj, d.lits, nil
}

type decoder struct {
	dec  *json.Decoder
	data []byte
	lits literals
}

func (d *decoder) token() (json.Token, error) {
	tok, err := d.dec.Token()
	if err != nil {
		return nil, err
	}
	if s, ok := tok.(string); ok {
		d.remember(s)
	}
	return tok, nil
}

// remember records the source spelling of the string token that ends at the
// decoder's current offset when it differs from the canonical encoding.
func (d *decoder) remember(s string) {
	end := int(d.dec.InputOffset())
	if end < 2 || end > len(d.data) || d.data[end-1] != '"' {
		return
	}
	start := -1
	for i := end - 2; i >= 0; i-- {
		if d.data[i] != '"' {
			continue
		}
		backslashes := 0
		for j := i - 1; j >= 0 && d.data[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			start = i
			break
		}
	}
	if start < 0 {
		return
	}

	raw := d.data[start:end]
	if bytes.IndexByte(raw, '\\') < 0 {
		return
	}
	var canonical bytes.Buffer
	if err := encodeScalar(&canonical, s, nil); err != nil || bytes.Equal(canonical.Bytes(), raw) {
		return
	}
	var check string
	if err := json.Unmarshal(raw, &check); err != nil || check != s {
		return
	}
	d.lits[s] = string(raw)
}

func (d *decoder) value() (any, error) {
	tok, err := d.token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool or nil
		return tok, nil
	}

	switch delim {
	case '{':
		obj := NewObject()
		for d.dec.More() {
			keyTok, err := d.token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("expected object key, got %v", keyTok)
			}
			val, err := d.value()
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			obj.Set(key, val)
		}
		if _, err := d.dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		list := make([]any, 0)
		for d.dec.More() {
			val, err := d.value()
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", len(list), err)
			}
			list = append(list, val)
		}
		if _, err := d.dec.Token(); err != nil {
			return nil, err
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// encodePretty renders obj as indented JSON without a trailing newline.
func encodePretty(obj *Object, lits literals) ([]byte, error) {
	var compact bytes.Buffer
	if err := encodeValue(&compact, obj, lits); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// encodeCompact renders v as compact JSON, preserving object key order.
func encodeCompact(v any, lits literals) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v, lits); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any, lits literals) error {
	switch val := v.(type) {
	case *Object:
		if val == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for pair, first := val.Oldest(), true; pair != nil; pair = pair.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := encodeScalar(buf, pair.Key, lits); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeValue(buf, pair.Value, lits); err != nil {
				return fmt.Errorf("key %q: %w", pair.Key, err)
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item, lits); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return encodeScalar(buf, val, lits)
	}
}

// encodeScalar writes any non-ordered value with encoding/json, leaving
// slashes and HTML characters unescaped. Strings found in lits are written
// in their recorded source spelling.
func encodeScalar(buf *bytes.Buffer, v any, lits literals) error {
	if s, ok := v.(string); ok {
		if raw, ok := lits[s]; ok {
			buf.WriteString(raw)
			return nil
		}
	}
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
