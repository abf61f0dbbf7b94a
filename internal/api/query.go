package api

import (
	"net/url"
	"strconv"
	"strings"
)

// Query builds a query string in which optional parameters appear only when
// set, in the order they were added. Absent optionals are omitted entirely,
// never sent as empty strings.
type Query struct {
	keys   []string
	values map[string]string
}

// NewQuery returns an empty query builder.
func NewQuery() *Query {
	return &Query{values: make(map[string]string)}
}

func (q *Query) add(key, value string) {
	if _, seen := q.values[key]; !seen {
		q.keys = append(q.keys, key)
	}
	q.values[key] = value
}

// String appends key=*v when v is non-nil.
func (q *Query) String(key string, v *string) *Query {
	if v != nil {
		q.add(key, *v)
	}
	return q
}

// Int appends key=*v when v is non-nil.
func (q *Query) Int(key string, v *int) *Query {
	if v != nil {
		q.add(key, strconv.Itoa(*v))
	}
	return q
}

// Bool appends key=*v when v is non-nil.
func (q *Query) Bool(key string, v *bool) *Query {
	if v != nil {
		q.add(key, strconv.FormatBool(*v))
	}
	return q
}

// Set appends key=value unconditionally.
func (q *Query) Set(key, value string) *Query {
	q.add(key, value)
	return q
}

// Has reports whether the key was set.
func (q *Query) Has(key string) bool {
	_, ok := q.values[key]
	return ok
}

// Get returns the value set for key, or "".
func (q *Query) Get(key string) string {
	return q.values[key]
}

// Encode serializes the parameters in insertion order.
func (q *Query) Encode() string {
	if q == nil || len(q.keys) == 0 {
		return ""
	}
	var b strings.Builder
	for _, k := range q.keys {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q.values[k]))
	}
	return b.String()
}

// Page holds the common pagination options shared by list endpoints.
type Page struct {
	Page  *int
	Limit *int
}

func (p Page) apply(q *Query) {
	q.Int("page", p.Page)
	q.Int("limit", p.Limit)
}
