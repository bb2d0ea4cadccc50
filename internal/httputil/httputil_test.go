package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOptionalInt64(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValue   *int64
		wantErr     bool
	}{
		{name: "absent", body: `{}`},
		{name: "null", body: `{"parent_id": null}`, wantPresent: true},
		{name: "number", body: `{"parent_id": 7}`, wantPresent: true, wantValue: func() *int64 { v := int64(7); return &v }()},
		{name: "string", body: `{"parent_id": "7"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req struct {
				ParentID OptionalInt64 `json:"parent_id"`
			}
			err := json.Unmarshal([]byte(tt.body), &req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if req.ParentID.Present != tt.wantPresent {
				t.Errorf("Present = %v, want %v", req.ParentID.Present, tt.wantPresent)
			}
			if (req.ParentID.Value == nil) != (tt.wantValue == nil) {
				t.Fatalf("Value = %v, want %v", req.ParentID.Value, tt.wantValue)
			}
			if tt.wantValue != nil && *req.ParentID.Value != *tt.wantValue {
				t.Errorf("Value = %d, want %d", *req.ParentID.Value, *tt.wantValue)
			}
		})
	}
}

func TestRespondErrorWithExtras(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithExtras(rec, http.StatusConflict, "taken", map[string]any{"kind": "duplicate_name"})

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["kind"] != "duplicate_name" || body["detail"] != "taken" || body["status"] != float64(409) {
		t.Errorf("body = %v", body)
	}
}

func TestPathInt64(t *testing.T) {
	tests := []struct {
		value   string
		want    int64
		wantErr bool
	}{
		{value: "42", want: 42},
		{value: "0", wantErr: true},
		{value: "-3", wantErr: true},
		{value: "abc", wantErr: true},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/folders/"+tt.value, nil)
		r.SetPathValue("id", tt.value)
		got, err := PathInt64(r, "id")
		if (err != nil) != tt.wantErr {
			t.Errorf("PathInt64(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("PathInt64(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestRespondYAML(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondYAML(rec, http.StatusOK, map[string]string{"name": "General"})

	if !strings.Contains(rec.Body.String(), "name: General") {
		t.Errorf("body = %q", rec.Body.String())
	}
}
