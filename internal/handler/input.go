package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// The web client posts form values, so references and numbers arrive as
// JSON numbers, numeric strings, empty strings or null.  These field types
// accept all of them; a missing key and a blank value both read as nil.

// idField is an optional foreign key.  "", null and 0 all mean "no reference".
type idField struct {
	v *uint64
}

func (f *idField) UnmarshalJSON(b []byte) error {
	s, null := scalar(b)
	if null {
		f.v = nil
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}
	if n == 0 {
		f.v = nil
		return nil
	}
	f.v = &n
	return nil
}

// ptr returns the reference or nil.
func (f idField) ptr() *uint64 { return f.v }

// numField is an optional decimal.
type numField struct {
	v *float64
}

func (f *numField) UnmarshalJSON(b []byte) error {
	s, null := scalar(b)
	if null {
		f.v = nil
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	f.v = &n
	return nil
}

func (f numField) ptr() *float64 { return f.v }

// or returns the value or def when absent.
func (f numField) or(def float64) float64 {
	if f.v == nil {
		return def
	}
	return *f.v
}

// intField is an optional integer.
type intField struct {
	v *int
}

func (f *intField) UnmarshalJSON(b []byte) error {
	s, null := scalar(b)
	if null {
		f.v = nil
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer %q", s)
	}
	f.v = &n
	return nil
}

func (f intField) ptr() *int { return f.v }

// scalar unquotes a JSON number or string.  null and blank strings report
// null.
func scalar(b []byte) (string, bool) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return "", true
	}
	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return string(b), false
		}
	} else {
		s = string(b)
	}
	s = strings.TrimSpace(s)
	return s, s == ""
}

// optStr trims s and returns nil when nothing is left.
func optStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// str dereferences an optional string.
func str(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// optDate validates an optional calendar date.
func optDate(field string, s *string) (*string, error) {
	v := optStr(s)
	if v == nil {
		return nil, nil
	}
	d, err := model.ParseDate(field, *v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
