package models

import "time"

// Sentence is one unit of translatable text belonging to a project.
// TranslatedSentence starts empty and is filled in by annotators.
type Sentence struct {
	SentenceID         int64     `json:"sentence_id"`
	ProjectID          string    `json:"project_id"`
	OriginalSentence   string    `json:"original_sentence"`
	TranslatedSentence string    `json:"translated_sentence"`
	CreatedOn          time.Time `json:"created_on"`
}
