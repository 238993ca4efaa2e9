package eval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDataset(t *testing.T) {
	path := writeFile(t, "truth.json", `{
		"rag_questions": [
			{
				"question_id": "q1",
				"question": "How is config loaded?",
				"sources": [
					{"file_path": "config.py", "first_character_index": 0, "last_character_index": 120}
				]
			},
			{"question_id": "q2", "question": "What does main do?"}
		]
	}`)

	ds, err := LoadDataset(path)
	require.NoError(t, err)
	require.Len(t, ds.Questions, 2)

	assert.Equal(t, "q1", ds.Questions[0].QuestionID)
	require.Len(t, ds.Questions[0].Sources, 1)
	assert.Equal(t, "config.py", ds.Questions[0].Sources[0].FilePath)
	assert.Empty(t, ds.Questions[1].Sources)
}

func TestLoadDatasetRejectsInvertedRange(t *testing.T) {
	path := writeFile(t, "bad.json", `{
		"rag_questions": [
			{
				"question_id": "q1",
				"sources": [
					{"file_path": "a.py", "first_character_index": 100, "last_character_index": 10}
				]
			}
		]
	}`)

	_, err := LoadDataset(path)
	assert.Error(t, err)
}

func TestLoadDatasetRejectsMissingQuestionID(t *testing.T) {
	path := writeFile(t, "bad.json", `{"rag_questions": [{"question": "no id"}]}`)

	_, err := LoadDataset(path)
	assert.Error(t, err)
}

func TestLoadResults(t *testing.T) {
	path := writeFile(t, "results.json", `{
		"search_results": [
			{
				"question_id": "q1",
				"retrieved_sources": [
					{"file_path": "a.py", "first_character_index": 5, "last_character_index": 50}
				]
			}
		],
		"k": 10
	}`)

	res, err := LoadResults(path)
	require.NoError(t, err)
	assert.Equal(t, 10, res.K)
	require.Len(t, res.SearchResults, 1)
	assert.Equal(t, "q1", res.SearchResults[0].QuestionID)
}

func TestLoadResultsMissingFile(t *testing.T) {
	_, err := LoadResults(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadDatasetMalformedJSON(t *testing.T) {
	path := writeFile(t, "garbage.json", `{not json`)

	_, err := LoadDataset(path)
	assert.Error(t, err)
}
