package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JangRuBin2/rulang/runtime/value"
)

func TestCreateAssignsIDAndList(t *testing.T) {
	s := New()
	rec := value.NewObject()
	rec.Set("name", value.String{Val: "Ada"})

	created := s.Create("users", rec)
	id, ok := created.Get("id")
	require.True(t, ok)
	assert.NotEmpty(t, id.(value.String).Val)

	list := s.List("users")
	require.Len(t, list, 1)
	assert.Same(t, created, list[0])
}

func TestGetUnknownIDReturnsNotFound(t *testing.T) {
	s := New()
	_, err := s.Get("users", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateMergesFieldsInPlace(t *testing.T) {
	s := New()
	rec := value.NewObject()
	rec.Set("name", value.String{Val: "Ada"})
	created := s.Create("users", rec)
	id, _ := created.Get("id")

	patch := value.NewObject()
	patch.Set("name", value.String{Val: "Ada Lovelace"})

	updated, err := s.Update("users", id.(value.String).Val, patch)
	require.NoError(t, err)
	name, _ := updated.Get("name")
	assert.Equal(t, "Ada Lovelace", name.(value.String).Val)
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	s := New()
	created := s.Create("users", value.NewObject())
	id, _ := created.Get("id")

	require.NoError(t, s.Delete("users", id.(value.String).Val))
	_, err := s.Get("users", id.(value.String).Val)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAsValueCreateAndGetRoundTrip(t *testing.T) {
	s := New()
	db := s.AsValue()

	create, _ := db.Get("create")
	rec := value.NewObject()
	rec.Set("name", value.String{Val: "Grace"})
	created, err := create.(*value.Native).Fn([]value.Value{value.String{Val: "users"}, rec})
	require.NoError(t, err)
	id, _ := created.(*value.Object).Get("id")

	get, _ := db.Get("get")
	fetched, err := get.(*value.Native).Fn([]value.Value{value.String{Val: "users"}, id})
	require.NoError(t, err)
	name, _ := fetched.(*value.Object).Get("name")
	assert.Equal(t, "Grace", name.(value.String).Val)
}
