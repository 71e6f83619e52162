package player

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// maxExactInt is the largest magnitude up to which every integer has an
// exact float64 representation (2^53).
const maxExactInt = 1 << 53

// Decode parses a saved record.
//
// Integers that fit in a float64 without rounding become float64 like any
// other JSON number. Larger integers stay json.Number so saving the record
// again writes back the same digits. A literal null decodes to a nil Record.
func Decode(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after player record")
	}
	if raw == nil {
		return nil, nil
	}

	rec := make(Record, len(raw))
	for k, v := range raw {
		rec[k] = normalizeValue(v)
	}
	return rec, nil
}

func normalizeValue(v any) any {
	switch v := v.(type) {
	case json.Number:
		return normalizeNumber(v)
	case map[string]any:
		for k, e := range v {
			v[k] = normalizeValue(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = normalizeValue(e)
		}
		return v
	default:
		return v
	}
}

func normalizeNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		if i >= -maxExactInt && i <= maxExactInt {
			return float64(i)
		}
		return n
	}
	if strings.ContainsAny(n.String(), ".eE") {
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	// Integer literal beyond int64.
	return n
}
