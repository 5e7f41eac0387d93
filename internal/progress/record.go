package progress

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/pot-code/skillspark/internal/domain"
)

// KeyPrefix prefix of the persistence key of a progress record
const KeyPrefix = "lesson_progress_"

// completedAt layout, ISO-8601 with millisecond precision in UTC
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

var errMalformedRecord = errors.New("malformed progress record")

// RecordKey deterministic persistence key of lesson's record
func RecordKey(lessonID string) string {
	return KeyPrefix + lessonID
}

type wireRecord struct {
	LessonID    *string `json:"lessonId"`
	IsCompleted *bool   `json:"isCompleted"`
	CompletedAt *string `json:"completedAt"`
}

func encodeRecord(record *domain.ProgressRecord) (string, error) {
	wire := wireRecord{
		LessonID:    &record.LessonID,
		IsCompleted: &record.IsCompleted,
	}
	if record.CompletedAt != nil {
		ts := record.CompletedAt.UTC().Format(timestampLayout)
		wire.CompletedAt = &ts
	}
	b, err := json.Marshal(&wire)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeRecord parse a stored record, lessonID must match the record key
func decodeRecord(lessonID, raw string) (*domain.ProgressRecord, error) {
	var wire wireRecord
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, err
	}
	if wire.IsCompleted == nil {
		return nil, errMalformedRecord
	}
	if wire.LessonID != nil && *wire.LessonID != lessonID {
		return nil, errMalformedRecord
	}

	record := &domain.ProgressRecord{
		LessonID:    lessonID,
		IsCompleted: *wire.IsCompleted,
	}
	if wire.CompletedAt != nil {
		ts, err := time.Parse(time.RFC3339Nano, *wire.CompletedAt)
		if err != nil {
			return nil, err
		}
		record.CompletedAt = &ts
	}
	return record, nil
}
