package models

import "time"

type BatchItemStatus string

const (
	StatusCompleted BatchItemStatus = "Completed"
	StatusFailed    BatchItemStatus = "Failed"
)

const ErrorValue = "Error"

// BatchDocument is one uploaded file waiting for analysis.
type BatchDocument struct {
	FileName string
	Path     string
}

// BatchItemResult is created once per input file and never mutated afterwards.
type BatchItemResult struct {
	FileName       string          `json:"fileName"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	JScore         float64         `json:"jScore"`
	GScore         float64         `json:"gScore"`
	Status         BatchItemStatus `json:"status"`
	ProcessingTime time.Time       `json:"processingTime"`
	Error          string          `json:"error,omitempty"`
}

func CompletedItem(fileName string, score ScoreResult, at time.Time) BatchItemResult {
	return BatchItemResult{
		FileName:       fileName,
		Name:           score.Name,
		Email:          score.Email,
		JScore:         score.JScore,
		GScore:         score.GScore,
		Status:         StatusCompleted,
		ProcessingTime: at.UTC(),
	}
}

func FailedItem(fileName string, err error, at time.Time) BatchItemResult {
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}

	return BatchItemResult{
		FileName:       fileName,
		Name:           ErrorValue,
		Email:          ErrorValue,
		Status:         StatusFailed,
		ProcessingTime: at.UTC(),
		Error:          msg,
	}
}
