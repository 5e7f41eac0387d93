package progress

import (
	"testing"
	"time"

	"github.com/pot-code/skillspark/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordKey(t *testing.T) {
	assert.Equal(t, "lesson_progress_42", RecordKey("42"))
	assert.Equal(t, "lesson_progress_", RecordKey(""))
}

func TestEncodeRecord(t *testing.T) {
	at := time.Date(2024, 3, 14, 17, 26, 53, 589000000, time.FixedZone("CST", 8*3600))
	raw, err := encodeRecord(&domain.ProgressRecord{LessonID: "l1", IsCompleted: true, CompletedAt: &at})
	require.NoError(t, err)
	assert.JSONEq(t, `{"lessonId":"l1","isCompleted":true,"completedAt":"2024-03-14T09:26:53.589Z"}`, raw)

	raw, err = encodeRecord(&domain.ProgressRecord{LessonID: "l1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"lessonId":"l1","isCompleted":false,"completedAt":null}`, raw)
}

func TestDecodeRecordAcceptsForeignTimestamps(t *testing.T) {
	record, err := decodeRecord("l1", `{"lessonId":"l1","isCompleted":true,"completedAt":"2024-03-14T17:26:53+08:00"}`)
	require.NoError(t, err)
	assert.True(t, record.CompletedAt.Equal(time.Date(2024, 3, 14, 9, 26, 53, 0, time.UTC)))

	_, err = decodeRecord("l1", `{"lessonId":7,"isCompleted":true}`)
	assert.Error(t, err)
}
