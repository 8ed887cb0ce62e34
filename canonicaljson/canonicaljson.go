// Package canonicaljson produces deterministic JSON for interface fragments.
//
// Marshal implements RFC 8785 (JCS). Canonicalize rewrites a decoded JSON
// value so that two fragments describing the same thing compare equal with
// reflect.DeepEqual and marshal to identical bytes, regardless of the order
// in which a producer emitted set-like arrays or which Go numeric type a
// decoder picked.
package canonicaljson

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Marshal returns the RFC 8785 (JCS) encoding of v.
//
//   - Object members are sorted by UTF-16 code units.
//   - Arrays keep their order.
//   - \b \t \n \f \r use shorthand escapes; other control characters use \u00XX.
//   - Numbers use ECMAScript formatting; -0 becomes 0.
//   - Output is compact.
func Marshal(v any) ([]byte, error) {
	var b []byte

	switch x := v.(type) {
	case json.RawMessage:
		b = x
	case []byte:
		b = x
	default:
		var err error
		b, err = json.Marshal(v)
		if err != nil {
			return nil, err
		}
	}

	val, err := decode(b)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := writeJCS(&buf, val); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String is Marshal returning a string.
func String(v any) (string, error) {
	b, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Equal reports whether a and b have the same JCS encoding.
// Values that cannot be encoded are never equal to anything.
func Equal(a, b any) bool {
	ab, err := Marshal(a)
	if err != nil {
		return false
	}
	bb, err := Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

func decode(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			return nil, errors.New("invalid JSON: trailing data")
		}
		return nil, err
	}
	return v, nil
}

func writeJCS(buf *bytes.Buffer, v any) error {
	switch x := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(x))
	case string:
		writeJCSString(buf, x)
	case json.Number:
		s, err := formatNumber(x.String())
		if err != nil {
			return err
		}
		buf.WriteString(s)
	case float64:
		s, err := formatFloat64(x)
		if err != nil {
			return err
		}
		buf.WriteString(s)
	case []any:
		buf.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJCS(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		buf.WriteByte('{')
		for i, k := range sortedKeys(x) {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJCSString(buf, k)
			buf.WriteByte(':')
			if err := writeJCS(buf, x[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return errors.New("unsupported JSON value type")
	}
	return nil
}

// sortedKeys orders object members by UTF-16 code units as JCS requires.
func sortedKeys(m map[string]any) []string {
	type kv struct {
		k   string
		key []uint16
	}
	keys := make([]kv, 0, len(m))
	for k := range m {
		keys = append(keys, kv{k: k, key: utf16.Encode([]rune(k))})
	}
	sort.Slice(keys, func(i, j int) bool {
		return lessUTF16(keys[i].key, keys[j].key)
	})
	out := make([]string, len(keys))
	for i, e := range keys {
		out[i] = e.k
	}
	return out
}

func lessUTF16(a, b []uint16) bool {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func writeJCSString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '\\':
			buf.WriteString(`\\`)
		case r == '"':
			buf.WriteString(`\"`)
		case r == '\b':
			buf.WriteString(`\b`)
		case r == '\t':
			buf.WriteString(`\t`)
		case r == '\n':
			buf.WriteString(`\n`)
		case r == '\f':
			buf.WriteString(`\f`)
		case r == '\r':
			buf.WriteString(`\r`)
		case r <= 0x1F:
			buf.WriteString(`\u00`)
			buf.WriteString(hex.EncodeToString([]byte{byte(r)}))
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

func formatNumber(s string) (string, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", err
	}
	return formatFloat64(f)
}

func formatFloat64(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", errors.New("invalid JSON number: NaN or Infinity")
	}
	if f == 0 {
		return "0", nil
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64)), nil
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// trimExponent turns Go's zero-padded exponent (1e-07) into the ECMAScript form (1e-7).
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	sign, exp := s[i+1], strings.TrimLeft(s[i+2:], "0")
	if exp == "" {
		exp = "0"
	}
	return s[:i+1] + string(sign) + exp
}
