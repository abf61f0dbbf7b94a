package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryOmitsNilOptionals(t *testing.T) {
	q := NewQuery()
	q.Bool("lue", nil)
	q.String("type", nil)
	q.Int("page", nil)

	assert.Equal(t, "", q.Encode())
	assert.False(t, q.Has("lue"))
}

func TestQueryPreservesInsertionOrder(t *testing.T) {
	read := false
	typ := "SYSTEME"
	page := 2
	limit := 10

	q := NewQuery()
	q.Bool("lue", &read)
	q.String("type", &typ)
	q.Int("page", &page)
	q.Int("limit", &limit)

	assert.Equal(t, "lue=false&type=SYSTEME&page=2&limit=10", q.Encode())
}

func TestQueryFalseIsNotOmitted(t *testing.T) {
	read := false
	q := NewQuery()
	q.Bool("lue", &read)

	assert.Equal(t, "lue=false", q.Encode())
}

func TestQueryEmptyStringValueIsKept(t *testing.T) {
	// A set-but-empty optional is different from an absent one.
	empty := ""
	q := NewQuery()
	q.String("search", &empty)

	assert.Equal(t, "search=", q.Encode())
	assert.True(t, q.Has("search"))
}

func TestQueryEscapesValues(t *testing.T) {
	v := "santé & prévention"
	q := NewQuery()
	q.String("search", &v)

	assert.Equal(t, "search=sant%C3%A9+%26+pr%C3%A9vention", q.Encode())
}

func TestQueryDuplicateKeyKeepsLastValue(t *testing.T) {
	q := NewQuery()
	q.Set("page", "1")
	q.Set("page", "3")

	assert.Equal(t, "page=3", q.Encode())
}

func TestNilQueryEncodesEmpty(t *testing.T) {
	var q *Query
	assert.Equal(t, "", q.Encode())
}

func TestPageApply(t *testing.T) {
	page, limit := 4, 25
	q := NewQuery()
	Page{Page: &page, Limit: &limit}.apply(q)

	assert.Equal(t, "page=4&limit=25", q.Encode())
}

func TestPageApplyPartial(t *testing.T) {
	limit := 50
	q := NewQuery()
	Page{Limit: &limit}.apply(q)

	assert.Equal(t, "limit=50", q.Encode())
}
