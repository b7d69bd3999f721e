package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/ats-analyzer/internal/models"
)

func rankItem(file string, jScore float64) models.BatchItemResult {
	return models.BatchItemResult{FileName: file, JScore: jScore, Status: models.StatusCompleted}
}

func fileNames(results []models.BatchItemResult) []string {
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.FileName)
	}
	return names
}

func TestRankResults(t *testing.T) {
	tests := []struct {
		name  string
		input []models.BatchItemResult
		want  []string
	}{
		{name: "empty", input: nil, want: []string{}},
		{name: "single", input: []models.BatchItemResult{rankItem("a", 10)}, want: []string{"a"}},
		{
			name:  "descending by jScore",
			input: []models.BatchItemResult{rankItem("a", 10), rankItem("b", 90), rankItem("c", 50)},
			want:  []string{"b", "c", "a"},
		},
		{
			name:  "ties keep input order",
			input: []models.BatchItemResult{rankItem("a", 50), rankItem("b", 70), rankItem("c", 50), rankItem("d", 0), rankItem("e", 50)},
			want:  []string{"b", "a", "c", "e", "d"},
		},
		{
			name:  "failed rows sink with zero score",
			input: []models.BatchItemResult{models.FailedItem("x", nil, time.Time{}), rankItem("y", 1)},
			want:  []string{"y", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fileNames(RankResults(tt.input)))
		})
	}
}

func TestRankResults_DoesNotMutateInput(t *testing.T) {
	input := []models.BatchItemResult{rankItem("a", 10), rankItem("b", 90)}

	ranked := RankResults(input)

	assert.Equal(t, []string{"a", "b"}, fileNames(input))
	assert.ElementsMatch(t, input, ranked)
}
