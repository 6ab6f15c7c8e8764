package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/wikibhasha/wikibhasha-engine/pkg/apperrors"
)

// MaxArticleTitleLength caps the article title, matching the column width.
const MaxArticleTitleLength = 150

// TargetLanguages is the fixed allow-list of 2-letter language codes a
// project may target.
var TargetLanguages = []string{
	"bn", "gu", "hi", "kn", "ml", "mr", "ne", "or", "pa", "si", "ta", "te", "ur",
}

// Project pairs one source article with one target language.
type Project struct {
	ProjectID      string    `json:"project_id"`
	ArticleTitle   string    `json:"article_title"`
	TargetLanguage string    `json:"target_language"`
	CreatedOn      time.Time `json:"created_on"`
	CreatedBy      int64     `json:"created_by"`
	AssignedTo     *int64    `json:"assigned_to"`
}

// IsValidTargetLanguage checks the code against the allow-list.
func IsValidTargetLanguage(code string) bool {
	for _, l := range TargetLanguages {
		if l == code {
			return true
		}
	}
	return false
}

// DeriveProjectID computes the primary key for a (title, language) pair.
// The derivation is case-insensitive: "India"/"te" and "india"/"TE" yield
// the same id.
func DeriveProjectID(articleTitle, targetLanguage string) string {
	return strings.ToLower(targetLanguage) + "_" + strings.ToLower(articleTitle)
}

// ValidateNewProject checks the creation inputs before any derivation.
func ValidateNewProject(articleTitle, targetLanguage string) error {
	if strings.TrimSpace(articleTitle) == "" {
		return apperrors.NewValidationError("article_title", "article title is required")
	}
	// Counted in runes, matching the VARCHAR(150) column.
	if utf8.RuneCountInString(articleTitle) > MaxArticleTitleLength {
		return apperrors.NewValidationError("article_title",
			"article title exceeds %d characters", MaxArticleTitleLength)
	}
	if !IsValidTargetLanguage(strings.ToLower(targetLanguage)) {
		return apperrors.NewValidationError("target_language",
			"%s is not a valid target language. Valid options are: %s",
			targetLanguage, strings.Join(TargetLanguages, ", "))
	}
	return nil
}

func (p *Project) String() string {
	return fmt.Sprintf("Project(%s)", p.ProjectID)
}
