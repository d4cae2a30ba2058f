// Package store implements the shared document store: a fixed set of
// named collections of JSON-like records. Two backends exist, a
// file-backed one that persists each collection as a whole JSON
// snapshot and a PostgreSQL one that keeps one row per record.
package store

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Collection names. Any other name is rejected.
const (
	Rooms     = "rooms"
	Players   = "players"
	Turns     = "turns"
	Messages  = "messages"
	Questions = "questions"
)

// Names lists every valid collection.
var Names = []string{Rooms, Players, Turns, Messages, Questions}

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrRecordNotFound    = errors.New("record not found")
)

// Record is one JSON-like document. The store reserves two fields:
// "id" is a unique identifier assigned at creation and never reused,
// and "seq" is a monotonically increasing write sequence per
// collection that serves as the ordering key.
type Record map[string]any

// ID returns the record identifier, or "" if unset.
func (r Record) ID() string {
	return r.String("id")
}

// Seq returns the write sequence number, or 0 if unset. JSON decoding
// yields float64 for numbers, so both forms are handled.
func (r Record) Seq() int64 {
	switch v := r["seq"].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// String returns a string field, or "" if absent or not a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Bool returns a bool field, false if absent.
func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Time parses an RFC3339 time field; the zero time if absent or malformed.
func (r Record) Time(key string) time.Time {
	s, ok := r[key].(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Matches reports whether the record's field equals value. Room codes
// are entered by humans, so the room_id field compares trimmed and
// case-insensitively; everything else compares exactly.
func (r Record) Matches(field, value string) bool {
	s, ok := r[field].(string)
	if !ok {
		return false
	}
	if field == "room_id" {
		return strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(value))
	}
	return s == value
}

// Collection is one named record set.
//
// Add assigns id and seq if absent, appends the record and returns the
// stored form. Update shallow-merges the partial record over the
// latest persisted one (fields absent from the patch are preserved)
// and returns the merged record, or ErrRecordNotFound. Reads are
// point-in-time snapshots.
type Collection interface {
	Name() string
	GetAll(ctx context.Context) ([]Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	GetBy(ctx context.Context, field, value string) ([]Record, error)
	Add(ctx context.Context, rec Record) (Record, error)
	Update(ctx context.Context, id string, patch Record) (Record, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// Store hands out collections by name.
type Store interface {
	Collection(name string) (Collection, error)
	Close() error
}

// MustCollection returns the named collection or panics. Intended for
// wiring with the package constants above, where an unknown name is a
// programming error.
func MustCollection(s Store, name string) Collection {
	col, err := s.Collection(name)
	if err != nil {
		panic(err)
	}
	return col
}

func validName(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}
