package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/wikibhasha/wikibhasha-engine/pkg/apperrors"
)

func asValidation(err error, target **apperrors.ValidationError) bool {
	return errors.As(err, target)
}

func TestDeriveProjectID(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		language string
		want     string
	}{
		{"lowercase inputs", "india", "te", "te_india"},
		{"mixed case title", "India", "te", "te_india"},
		{"uppercase language", "india", "TE", "te_india"},
		{"both mixed", "New Delhi", "Hi", "hi_new delhi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveProjectID(tt.title, tt.language)
			if got != tt.want {
				t.Errorf("DeriveProjectID(%q, %q) = %q, want %q", tt.title, tt.language, got, tt.want)
			}
		})
	}
}

func TestDeriveProjectID_CaseInsensitiveCollision(t *testing.T) {
	if DeriveProjectID("India", "te") != DeriveProjectID("india", "TE") {
		t.Error("expected case variants of the same pair to derive the same id")
	}
}

func TestValidateNewProject(t *testing.T) {
	if err := ValidateNewProject("India", "te"); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestValidateNewProject_InvalidLanguage(t *testing.T) {
	err := ValidateNewProject("India", "xx")
	var validationErr *apperrors.ValidationError
	if !asValidation(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != "target_language" {
		t.Errorf("expected target_language field, got %q", validationErr.Field)
	}
	if !strings.Contains(validationErr.Message, "xx") {
		t.Errorf("expected message to name the invalid code, got %q", validationErr.Message)
	}
}

func TestValidateNewProject_EmptyTitle(t *testing.T) {
	err := ValidateNewProject("   ", "te")
	var validationErr *apperrors.ValidationError
	if !asValidation(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != "article_title" {
		t.Errorf("expected article_title field, got %q", validationErr.Field)
	}
}

func TestValidateNewProject_TitleTooLong(t *testing.T) {
	err := ValidateNewProject(strings.Repeat("a", MaxArticleTitleLength+1), "te")
	var validationErr *apperrors.ValidationError
	if !asValidation(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestValidateNewProject_TitleLengthInRunes(t *testing.T) {
	// Three bytes per character in UTF-8; the cap counts characters.
	if err := ValidateNewProject(strings.Repeat("भ", MaxArticleTitleLength), "hi"); err != nil {
		t.Fatalf("%d-character Devanagari title rejected: %v", MaxArticleTitleLength, err)
	}

	err := ValidateNewProject(strings.Repeat("भ", MaxArticleTitleLength+1), "hi")
	var validationErr *apperrors.ValidationError
	if !asValidation(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != "article_title" {
		t.Errorf("expected article_title field, got %q", validationErr.Field)
	}
}

func TestIsValidTargetLanguage(t *testing.T) {
	for _, code := range TargetLanguages {
		if !IsValidTargetLanguage(code) {
			t.Errorf("allow-listed code %q rejected", code)
		}
	}
	for _, code := range []string{"en", "fr", "xx", "", "TE"} {
		if IsValidTargetLanguage(code) {
			t.Errorf("code %q unexpectedly accepted", code)
		}
	}
}
