package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Browser forms post numeric fields as strings, and blank inputs as "".
// OptionalInt and OptionalFloat accept a JSON number, a numeric string,
// null or "" (the last two meaning absent).

// NumberError reports a numeric profile field that could not be read.
type NumberError struct {
	Raw    string
	Reason string
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("%s: %q", e.Reason, e.Raw)
}

// OptionalInt is an int that may be absent.
type OptionalInt struct {
	Value *int
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalInt) UnmarshalJSON(b []byte) error {
	raw, ok, err := numericText(b)
	if err != nil || !ok {
		o.Value = nil
		return err
	}
	f, err := parseFinite(raw)
	if err != nil {
		return err
	}
	n := int(f)
	if float64(n) != f {
		return &NumberError{Raw: raw, Reason: "not a whole number"}
	}
	o.Value = &n
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// OptionalFloat is a float64 that may be absent.
type OptionalFloat struct {
	Value *float64
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalFloat) UnmarshalJSON(b []byte) error {
	raw, ok, err := numericText(b)
	if err != nil || !ok {
		o.Value = nil
		return err
	}
	f, err := parseFinite(raw)
	if err != nil {
		return err
	}
	o.Value = &f
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o OptionalFloat) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// parseFinite parses raw as a float64. ParseFloat also accepts "NaN" and
// "Inf", which encoding/json cannot write back out, so those are refused.
func parseFinite(raw string) (float64, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &NumberError{Raw: raw, Reason: "not a number"}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &NumberError{Raw: raw, Reason: "not a finite number"}
	}
	return f, nil
}

// numericText returns the textual number inside b. ok is false for null and "".
func numericText(b []byte) (string, bool, error) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return "", false, nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", false, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return "", false, nil
		}
		return s, true, nil
	}
	return string(b), true, nil
}
