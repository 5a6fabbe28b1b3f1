// Package store is the in-memory, uuid-keyed CRUD collection a Rulang
// program's handler bodies see as the `db` binding. It mirrors the shape
// of the teacher's internal/orm/crud Operations (Create/Get/List/Update/
// Delete over named collections of records) but holds everything in memory
// rather than issuing SQL: the language has no persistence story, and
// adding one would be inventing a feature the spec explicitly excludes.
package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/JangRuBin2/rulang/compiler/rerrors"
	"github.com/JangRuBin2/rulang/runtime/value"
)

// ErrNotFound is returned when a record id is absent from its collection.
var ErrNotFound = errors.New("record not found")

// Store holds an arbitrary number of named collections, each a map of
// record id to a Rulang Object. Safe for concurrent use by multiple
// in-flight request handlers.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]*value.Object
}

// New returns an empty Store.
func New() *Store {
	return &Store{collections: make(map[string]map[string]*value.Object)}
}

func (s *Store) collection(name string) map[string]*value.Object {
	c, ok := s.collections[name]
	if !ok {
		c = make(map[string]*value.Object)
		s.collections[name] = c
	}
	return c
}

// Create assigns a fresh uuid, stamps it onto record's "id" field, stores
// it under collection, and returns the record.
func (s *Store) Create(collection string, record *value.Object) *value.Object {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	record.Set("id", value.String{Val: id})
	s.collection(collection)[id] = record
	return record
}

// Get returns the record with id in collection.
func (s *Store) Get(collection, id string) (*value.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

// List returns every record in collection, in no particular order.
func (s *Store) List(collection string) []*value.Object {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.collections[collection]
	records := make([]*value.Object, 0, len(c))
	for _, record := range c {
		records = append(records, record)
	}
	return records
}

// Update merges fields into the record with id, overwriting existing keys.
func (s *Store) Update(collection, id string, fields *value.Object) (*value.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.collection(collection)[id]
	if !ok {
		return nil, ErrNotFound
	}
	for _, k := range fields.Keys() {
		v, _ := fields.Get(k)
		record.Set(k, v)
	}
	return record, nil
}

// Delete removes the record with id from collection.
func (s *Store) Delete(collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(collection)
	if _, ok := c[id]; !ok {
		return ErrNotFound
	}
	delete(c, id)
	return nil
}

// AsValue exposes the store as the `db` binding Rulang handler bodies see:
// an Object of Natives, each taking a collection name as its first String
// argument (and id/fields as documented per operation), matching the
// pattern builtins.go uses for the String/Util namespaces.
func (s *Store) AsValue() *value.Object {
	db := value.NewObject()

	db.Set("create", &value.Native{Name: "db.create", Fn: func(args []value.Value) (value.Value, error) {
		collection, record, err := collectionAndObject(args)
		if err != nil {
			return nil, err
		}
		return s.Create(collection, record), nil
	}})

	db.Set("get", &value.Native{Name: "db.get", Fn: func(args []value.Value) (value.Value, error) {
		collection, id, err := collectionAndID(args)
		if err != nil {
			return nil, err
		}
		record, err := s.Get(collection, id)
		if err != nil {
			return value.Null{}, nil
		}
		return record, nil
	}})

	db.Set("list", &value.Native{Name: "db.list", Fn: func(args []value.Value) (value.Value, error) {
		collection, ok := stringArg(args, 0)
		if !ok {
			return nil, errNotEnoughArgs("db.list")
		}
		records := s.List(collection)
		elements := make([]value.Value, len(records))
		for i, r := range records {
			elements[i] = r
		}
		return value.NewArray(elements), nil
	}})

	db.Set("update", &value.Native{Name: "db.update", Fn: func(args []value.Value) (value.Value, error) {
		if len(args) != 3 {
			return nil, errNotEnoughArgs("db.update")
		}
		collection, ok := stringArg(args, 0)
		id, ok2 := stringArg(args, 1)
		fields, ok3 := args[2].(*value.Object)
		if !ok || !ok2 || !ok3 {
			return nil, errNotEnoughArgs("db.update")
		}
		record, err := s.Update(collection, id, fields)
		if err != nil {
			return value.Null{}, nil
		}
		return record, nil
	}})

	db.Set("delete", &value.Native{Name: "db.delete", Fn: func(args []value.Value) (value.Value, error) {
		collection, id, err := collectionAndID(args)
		if err != nil {
			return nil, err
		}
		return value.Boolean{Val: s.Delete(collection, id) == nil}, nil
	}})

	return db
}

func stringArg(args []value.Value, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	s, ok := args[i].(value.String)
	return s.Val, ok
}

func collectionAndID(args []value.Value) (string, string, error) {
	collection, ok := stringArg(args, 0)
	id, ok2 := stringArg(args, 1)
	if !ok || !ok2 {
		return "", "", errNotEnoughArgs("db")
	}
	return collection, id, nil
}

func collectionAndObject(args []value.Value) (string, *value.Object, error) {
	if len(args) != 2 {
		return "", nil, errNotEnoughArgs("db.create")
	}
	collection, ok := stringArg(args, 0)
	record, ok2 := args[1].(*value.Object)
	if !ok || !ok2 {
		return "", nil, errNotEnoughArgs("db.create")
	}
	return collection, record, nil
}

func errNotEnoughArgs(name string) error {
	return &rerrors.TypeError{Message: name + " called with wrong argument types"}
}
