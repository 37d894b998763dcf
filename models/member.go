package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Member represents one user record served by the members endpoint.
type Member struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UnmarshalJSON accepts the id either as a JSON number or as a quoted integer,
// which is how the public members feed serves it.
func (m *Member) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    json.RawMessage `json:"id"`
		Name  string          `json:"name"`
		Email string          `json:"email"`
		Role  string          `json:"role"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := parseID(raw.ID)
	if err != nil {
		return err
	}
	*m = Member{ID: id, Name: raw.Name, Email: raw.Email, Role: raw.Role}
	return nil
}

func parseID(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, fmt.Errorf("member id is missing")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		id, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("member id %q is not an integer", s)
		}
		return id, nil
	}
	var id int
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, fmt.Errorf("member id %s is not an integer", raw)
	}
	return id, nil
}

// SelectionSet stores which members are checked (map of member ID to selection status)
type SelectionSet map[int]bool

// Has reports whether id is selected.
func (s SelectionSet) Has(id int) bool {
	return s[id]
}

// Clone returns an independent copy of the set.
func (s SelectionSet) Clone() SelectionSet {
	out := make(SelectionSet, len(s))
	for id, ok := range s {
		if ok {
			out[id] = true
		}
	}
	return out
}

// IDs returns the selected ids in ascending order.
func (s SelectionSet) IDs() []int {
	ids := make([]int, 0, len(s))
	for id, ok := range s {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Field names one editable member column.
type Field string

const (
	FieldName  Field = "name"
	FieldEmail Field = "email"
	FieldRole  Field = "role"
)

// Fields lists the editable fields in display order.
var Fields = []Field{FieldName, FieldEmail, FieldRole}

// ParseField maps a column name to a Field.
func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldName, FieldEmail, FieldRole:
		return Field(s), nil
	}
	return "", fmt.Errorf("unknown field %q", s)
}

// Get returns the value of field f.
func (m Member) Get(f Field) string {
	switch f {
	case FieldName:
		return m.Name
	case FieldEmail:
		return m.Email
	case FieldRole:
		return m.Role
	}
	return ""
}
