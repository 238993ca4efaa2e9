// Package eval computes retrieval-quality metrics over labeled datasets.
package eval

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Source is a citation into a file: a half-open character range. Both
// retrieval results and ground-truth labels use this shape.
type Source struct {
	FilePath            string `json:"file_path" validate:"required"`
	FirstCharacterIndex int    `json:"first_character_index" validate:"gte=0,ltefield=LastCharacterIndex"`
	LastCharacterIndex  int    `json:"last_character_index" validate:"gte=0"`
}

// Question is one labeled dataset entry. Sources and Answer are optional:
// a query-only dataset has neither, a ground-truth dataset has Sources.
type Question struct {
	QuestionID string   `json:"question_id" validate:"required"`
	Question   string   `json:"question"`
	Sources    []Source `json:"sources,omitempty" validate:"omitempty,dive"`
	Answer     string   `json:"answer,omitempty"`
}

// Dataset is the ground-truth / query file format.
type Dataset struct {
	Questions []Question `json:"rag_questions" validate:"dive"`
}

// SearchResult is the retrieval record for one question, sources in
// ranking order, most relevant first.
type SearchResult struct {
	QuestionID       string   `json:"question_id" validate:"required"`
	RetrievedSources []Source `json:"retrieved_sources" validate:"dive"`
	Answer           string   `json:"answer,omitempty"`
}

// Results is the retrieval output file format.
type Results struct {
	SearchResults []SearchResult `json:"search_results" validate:"dive"`
	K             int            `json:"k"`
}

// LoadDataset reads and validates a dataset file. Malformed records are
// rejected here, before any metric sees them.
func LoadDataset(path string) (*Dataset, error) {
	var ds Dataset
	if err := loadJSON(path, &ds); err != nil {
		return nil, err
	}
	if err := validate.Struct(&ds); err != nil {
		return nil, fmt.Errorf("invalid dataset %s: %w", path, err)
	}
	return &ds, nil
}

// LoadResults reads and validates a search-results file.
func LoadResults(path string) (*Results, error) {
	var res Results
	if err := loadJSON(path, &res); err != nil {
		return nil, err
	}
	if err := validate.Struct(&res); err != nil {
		return nil, fmt.Errorf("invalid results %s: %w", path, err)
	}
	return &res, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
