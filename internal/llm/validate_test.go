package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func candidateSchema() *Schema {
	return &Schema{
		Name:        "candidate",
		Description: "A candidate skill",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"skillName":   map[string]any{"type": "string"},
				"targetLevel": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				"difficulty":  map[string]any{"type": "string", "enum": []any{"beginner", "intermediate", "advanced", "expert"}},
			},
			"required": []any{"skillName", "targetLevel"},
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"skillName":"Java OOP","targetLevel":70,"difficulty":"intermediate"}`)
	if err := validateResponse(candidateSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_OptionalOmitted(t *testing.T) {
	raw := json.RawMessage(`{"skillName":"SQL Joins","targetLevel":40}`)
	if err := validateResponse(candidateSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"skillName":"SQL Joins"}`)
	err := validateResponse(candidateSchema(), raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
}

func TestValidateResponse_OutOfRange(t *testing.T) {
	raw := json.RawMessage(`{"skillName":"SQL Joins","targetLevel":140}`)
	err := validateResponse(candidateSchema(), raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
}

func TestValidateResponse_BadEnum(t *testing.T) {
	raw := json.RawMessage(`{"skillName":"SQL Joins","targetLevel":40,"difficulty":"wizard"}`)
	err := validateResponse(candidateSchema(), raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := validateResponse(candidateSchema(), raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
}

func TestValidateResponse_NilSchemaPasses(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything at all`)); err != nil {
		t.Fatalf("nil schema must pass, got: %v", err)
	}
}
