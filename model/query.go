package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Criterion is one field of a Query. A nil Value means the caller considered the field
// but has no preference for it.
type Criterion struct {
	Field string      `json:"field"`
	Value interface{} `json:"value"`
}

// Query is an ordered set of criteria. Field order is significant: it fixes the order in
// which the matcher explores relaxations and therefore how ties are broken.
// The JSON form is a plain object; key order is preserved on decode.
type Query struct {
	criteria []Criterion
}

// NewQuery builds a query from criteria in the given order. A repeated field keeps its
// first position and takes the last value.
func NewQuery(criteria ...Criterion) Query {
	var q Query
	for _, c := range criteria {
		q.Set(c.Field, c.Value)
	}
	return q
}

// Set adds a field to the end of the query, or replaces its value in place if present.
func (q *Query) Set(field string, value interface{}) {
	for i := range q.criteria {
		if q.criteria[i].Field == field {
			q.criteria[i].Value = value
			return
		}
	}
	q.criteria = append(q.criteria, Criterion{Field: field, Value: value})
}

// Without returns a copy of the query with the field removed.
func (q Query) Without(field string) Query {
	out := Query{criteria: make([]Criterion, 0, len(q.criteria))}
	for _, c := range q.criteria {
		if c.Field != field {
			out.criteria = append(out.criteria, c)
		}
	}
	return out
}

// Value returns the value for a field and whether the field is part of the query.
func (q Query) Value(field string) (interface{}, bool) {
	for _, c := range q.criteria {
		if c.Field == field {
			return c.Value, true
		}
	}
	return nil, false
}

// Fields returns the field names in query order.
func (q Query) Fields() []string {
	fields := make([]string, len(q.criteria))
	for i, c := range q.criteria {
		fields[i] = c.Field
	}
	return fields
}

// Criteria returns a copy of the criteria in query order.
func (q Query) Criteria() []Criterion {
	out := make([]Criterion, len(q.criteria))
	copy(out, q.criteria)
	return out
}

// Len returns the number of fields in the query.
func (q Query) Len() int {
	return len(q.criteria)
}

// MarshalJSON writes the query as a JSON object in query order.
func (q Query) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range q.criteria {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Field)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal value of field '%s': %w", c.Field, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the order in which keys appear.
func (q *Query) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		q.criteria = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("query must be a JSON object")
	}

	parsed := Query{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("query keys must be strings")
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("invalid value for field '%s': %w", key, err)
		}
		parsed.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*q = parsed
	return nil
}
