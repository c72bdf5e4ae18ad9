// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

const (
	fieldID        = "id"
	fieldUpdatedAt = "updatedAt"
	fieldVariantID = "variantId"
)

// Bounds of a float timestamp that converts to int64 exactly: -2^63 and 2^63.
const (
	minTimestamp = float64(math.MinInt64)
	maxTimestamp = -float64(math.MinInt64)
)

// Entity is a single synchronized record: an opening, chapter, variant, move
// or setting.
//
// Only the identity and the conflict-resolution timestamp are interpreted by
// the server. Every other JSON field sent by a client is kept verbatim and
// written back unchanged, so clients may evolve their payloads without a
// server release.
type Entity struct {
	// ID is the client-generated, globally unique identifier of the record.
	ID string

	// UpdatedAt is the client-set modification time in epoch milliseconds.
	// It is the only signal used for last-write-wins resolution.
	UpdatedAt int64

	// stamped is true when UpdatedAt was explicitly provided.
	stamped bool

	// fields holds every JSON member except "id" and "updatedAt".
	fields map[string]json.RawMessage
}

// NewEntity builds an entity with the given identity and timestamp and no
// payload fields.
func NewEntity(id string, updatedAt int64) Entity {
	return Entity{ID: id, UpdatedAt: updatedAt, stamped: true}
}

// NewMove builds a move entity that belongs to variantID.
func NewMove(id, variantID string, updatedAt int64) Entity {
	return NewEntity(id, updatedAt).With(fieldVariantID, variantID)
}

// With returns a copy of e with the payload field key set to value.
// It panics if value cannot be encoded as JSON, which only happens for
// programmer errors such as channels or functions.
func (e Entity) With(key string, value any) Entity {
	raw, err := json.Marshal(value)
	if err != nil {
		panic(fmt.Sprintf("models: encoding field %q: %v", key, err))
	}

	out := e.Clone()
	if out.fields == nil {
		out.fields = make(map[string]json.RawMessage, 1)
	}
	out.fields[key] = raw

	return out
}

// Field returns the raw JSON of a payload field, or nil if it is absent.
func (e Entity) Field(key string) json.RawMessage {
	return e.fields[key]
}

// VariantID returns the "variantId" back-reference of a move, or an empty
// string when the entity carries none.
func (e Entity) VariantID() string {
	raw, ok := e.fields[fieldVariantID]
	if !ok {
		return ""
	}

	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return ""
	}

	return id
}

// GetID returns the entity identifier.
func (e Entity) GetID() string { return e.ID }

// GetUpdatedAt returns the entity modification timestamp.
func (e Entity) GetUpdatedAt() int64 { return e.UpdatedAt }

// NewerThan reports whether e wins a last-write-wins comparison against
// other. Equal timestamps never win.
func (e Entity) NewerThan(other Entity) bool {
	return e.UpdatedAt > other.UpdatedAt
}

// Validate checks that the entity is well formed: a non-empty id and an
// explicit updatedAt.
func (e Entity) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: empty id", ErrMalformedEntity)
	}
	if !e.stamped {
		return fmt.Errorf("%w: %q has no updatedAt", ErrMalformedEntity, e.ID)
	}

	return nil
}

// Clone returns a copy of e whose payload map can be modified independently.
func (e Entity) Clone() Entity {
	out := e
	if e.fields != nil {
		out.fields = make(map[string]json.RawMessage, len(e.fields))
		for k, v := range e.fields {
			out.fields[k] = v
		}
	}

	return out
}

// MarshalJSON writes the payload fields together with id and updatedAt.
func (e Entity) MarshalJSON() ([]byte, error) {
	obj := make(map[string]json.RawMessage, len(e.fields)+2)
	for k, v := range e.fields {
		obj[k] = v
	}

	id, err := json.Marshal(e.ID)
	if err != nil {
		return nil, err
	}
	obj[fieldID] = id
	obj[fieldUpdatedAt] = json.RawMessage(strconv.FormatInt(e.UpdatedAt, 10))

	return json.Marshal(obj)
}

// UnmarshalJSON reads any JSON object, extracting id and updatedAt and
// keeping every other member verbatim.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEntity, err)
	}
	if obj == nil {
		return fmt.Errorf("%w: null entity", ErrMalformedEntity)
	}

	*e = Entity{}

	if raw, ok := obj[fieldID]; ok {
		if err := json.Unmarshal(raw, &e.ID); err != nil {
			return fmt.Errorf("%w: id must be a string", ErrMalformedEntity)
		}
		delete(obj, fieldID)
	}

	if raw, ok := obj[fieldUpdatedAt]; ok {
		ts, present, err := parseTimestamp(raw)
		if err != nil {
			return fmt.Errorf("%w: updatedAt of %q: %w", ErrMalformedEntity, e.ID, err)
		}
		e.UpdatedAt = ts
		e.stamped = present
		delete(obj, fieldUpdatedAt)
	}

	if len(obj) > 0 {
		e.fields = obj
	}

	return nil
}

// parseTimestamp accepts a JSON number (integer or float) or a numeric
// string. JSON null is reported as absent.
func parseTimestamp(raw json.RawMessage) (int64, bool, error) {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return 0, false, nil
	}

	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false, err
		}
		raw = []byte(s)
	}

	if v, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
		return v, true, nil
	}

	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, false, fmt.Errorf("not a timestamp: %s", raw)
	}
	// the negation also rejects NaN
	if !(f >= minTimestamp && f < maxTimestamp) {
		return 0, false, fmt.Errorf("timestamp out of range: %s", raw)
	}

	return int64(f), true, nil
}
