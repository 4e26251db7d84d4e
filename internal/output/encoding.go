// Package output encodes command responses deterministically: object keys
// are sorted and floats are rounded, so the same analysis always produces
// byte-identical JSON. Weights such as 1-3*0.2 come out as 0.4.
package output

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Encode returns the compact deterministic JSON encoding of v.
func Encode(v interface{}) ([]byte, error) {
	return EncodeIndented(v, "")
}

// EncodeIndented returns the deterministic JSON encoding of v, indented with
// indent when it is non-empty.
func EncodeIndented(v interface{}, indent string) ([]byte, error) {
	normalized, err := normalize(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// normalize round-trips v through its own JSON encoding, so custom
// marshalers and struct tags are honored, then rounds every fractional
// number. Maps are re-encoded with sorted keys by encoding/json.
func normalize(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var generic interface{}
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return roundNumbers(generic), nil
}

func roundNumbers(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, item := range val {
			val[k] = roundNumbers(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = roundNumbers(item)
		}
		return val
	case json.Number:
		s := val.String()
		if !strings.ContainsAny(s, ".eE") {
			return val
		}
		f, err := val.Float64()
		if err != nil {
			return val
		}
		return json.Number(FormatFloat(f))
	default:
		return v
	}
}
