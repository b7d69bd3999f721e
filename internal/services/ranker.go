package services

import (
	"sort"

	"alfredoptarigan/ats-analyzer/internal/models"
)

// RankResults returns a copy of results ordered by jScore, highest first. Ties keep
// their input order and the input slice is left untouched.
func RankResults(results []models.BatchItemResult) []models.BatchItemResult {
	ranked := make([]models.BatchItemResult, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].JScore > ranked[j].JScore
	})

	return ranked
}
