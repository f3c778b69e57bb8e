package dto

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSaveProfileRequest_LenientNumbers(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantAge    *int
		wantHeight *float64
		wantErr    bool
	}{
		{"numbers", `{"age":29,"height":165.5}`, intPtr(29), floatPtr(165.5), false},
		{"strings", `{"age":"29","height":"165.5"}`, intPtr(29), floatPtr(165.5), false},
		{"blank strings", `{"age":"","height":"  "}`, nil, nil, false},
		{"nulls", `{"age":null,"height":null}`, nil, nil, false},
		{"absent", `{}`, nil, nil, false},
		{"fractional age", `{"age":"29.5"}`, nil, nil, true},
		{"word", `{"height":"tall"}`, nil, nil, true},
		{"infinity", `{"height":"Infinity"}`, nil, nil, true},
		{"negative inf", `{"height":"-Inf"}`, nil, nil, true},
		{"nan", `{"height":"NaN"}`, nil, nil, true},
		{"nan age", `{"age":"nan"}`, nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SaveProfileRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var numErr *NumberError
				if !errors.As(err, &numErr) {
					t.Errorf("err = %T, want *NumberError", err)
				}
				return
			}
			if !equalPtr(req.Age.Value, tt.wantAge) {
				t.Errorf("age = %v, want %v", deref(req.Age.Value), deref(tt.wantAge))
			}
			if !equalPtr(req.Height.Value, tt.wantHeight) {
				t.Errorf("height = %v, want %v", deref(req.Height.Value), deref(tt.wantHeight))
			}
		})
	}
}

func TestSaveProfileRequest_Profile_BlankStrings(t *testing.T) {
	var req SaveProfileRequest
	if err := json.Unmarshal([]byte(`{"email":"a@b.c","name":"  Ana ","gender":""}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	p := req.Profile()
	if p.Name == nil || *p.Name != "Ana" {
		t.Errorf("name = %v, want trimmed Ana", deref(p.Name))
	}
	if p.Gender != nil {
		t.Errorf("blank gender should be absent, got %q", *p.Gender)
	}
}

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
