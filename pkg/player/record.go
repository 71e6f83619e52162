package player

import (
	"encoding/json"
	"maps"
	"sort"
)

// Well-known record fields read and written by the casino itself.
// Any other field is carried through untouched.
const (
	FieldMoney = "money"
	FieldDays  = "days"
)

// Record is a player's persisted progress: a flat mapping of named
// numeric or textual attributes. There is no fixed schema.
//
// Numbers are stored as float64 so that a record read back from JSON
// compares equal to the one that was written. Integers too large for a
// float64 are kept as json.Number (see Decode).
type Record map[string]any

// Default returns the record used when no saved state exists.
func Default() Record {
	return Record{
		FieldMoney: float64(0),
		FieldDays:  float64(0),
	}
}

// Money returns the current balance. A missing or non-numeric value reads as 0.
func (r Record) Money() float64 {
	return r.number(FieldMoney)
}

// Days returns the day counter. A missing or non-numeric value reads as 0.
func (r Record) Days() float64 {
	return r.number(FieldDays)
}

// AddMoney adjusts the balance by delta and returns the new balance.
func (r Record) AddMoney(delta float64) float64 {
	v := r.Money() + delta
	r[FieldMoney] = v
	return v
}

// NextDay increments the day counter and returns the new day number.
func (r Record) NextDay() float64 {
	v := r.Days() + 1
	r[FieldDays] = v
	return v
}

// Fields returns the record's keys in sorted order.
func (r Record) Fields() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

func (r Record) number(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
