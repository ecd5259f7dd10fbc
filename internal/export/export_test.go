// ABOUTME: Tests for result serialization and atomic file writing.
// ABOUTME: Round-trip, determinism, and missing-directory failure cases.
package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/coroshub/coroshub/internal/models"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func utc(sec int64) time.Time { return time.Unix(sec, 0).UTC() }

func timePtr(v time.Time) *time.Time { return &v }

func resultFixture() *models.ExtractionResult {
	hr := intPtr(152)
	return &models.ExtractionResult{
		Activities: []models.Activity{
			{
				LabelID:      "L-1",
				Name:         "Tempo Run",
				SportType:    101,
				Sport:        "indoor_run",
				StartTime:    utc(1700000000),
				EndTime:      timePtr(utc(1700002400)),
				TotalTime:    intPtr(2400),
				Distance:     floatPtr(8000),
				AvgHeartRate: hr,
				AvgSpeed:     floatPtr(3.33),
				Laps: []models.Lap{
					{Index: 0, StartTime: utc(1700000000), EndTime: timePtr(utc(1700001200)), Distance: floatPtr(4000), Duration: floatPtr(1200)},
					{Index: 1, StartTime: utc(1700001200), EndTime: timePtr(utc(1700002400)), Distance: floatPtr(4000), Duration: floatPtr(1200), AvgHeartRate: intPtr(161)},
				},
				Samples: []models.Sample{
					{Time: utc(1700000000), HeartRate: intPtr(120)},
					{Time: utc(1700000060), HeartRate: intPtr(145), Cadence: intPtr(176)},
				},
			},
		},
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	result := resultFixture()
	dest := filepath.Join(t.TempDir(), "activities.json")

	require.NoError(t, Write(result, dest, FormatJSON))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)

	var activities []models.Activity
	require.NoError(t, json.Unmarshal(data, &activities))
	assert.Equal(t, result.Activities, activities)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	result := resultFixture()
	dest := filepath.Join(t.TempDir(), "activities.yaml")

	require.NoError(t, Write(result, dest, FormatYAML))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)

	var activities []models.Activity
	require.NoError(t, yaml.Unmarshal(data, &activities))
	require.Len(t, activities, 1)
	assert.Equal(t, result.Activities[0].LabelID, activities[0].LabelID)
	assert.Len(t, activities[0].Laps, 2)
}

func TestWriteIsDeterministic(t *testing.T) {
	result := resultFixture()
	dir := t.TempDir()
	destA := filepath.Join(dir, "a.json")
	destB := filepath.Join(dir, "b.json")

	require.NoError(t, Write(result, destA, FormatJSON))
	require.NoError(t, Write(result, destB, FormatJSON))

	bytesA, err := os.ReadFile(destA)
	require.NoError(t, err)
	bytesB, err := os.ReadFile(destB)
	require.NoError(t, err)
	assert.Equal(t, bytesA, bytesB, "same result must serialize to identical bytes")
}

func TestWriteAbsentOptionalIsNullNotZero(t *testing.T) {
	result := &models.ExtractionResult{
		Activities: []models.Activity{
			{LabelID: "L-2", StartTime: utc(1700000000), Laps: []models.Lap{}, Samples: []models.Sample{}},
		},
	}
	data, err := Marshal(result, FormatJSON)
	require.NoError(t, err)

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	require.Len(t, parsed, 1)

	for _, field := range []string{"avg_heart_rate", "total_time", "distance", "calories", "end_time"} {
		val, present := parsed[0][field]
		assert.True(t, present, "%s stays visible in the output", field)
		assert.Nil(t, val, "absent %s must be null, not a zero value", field)
	}
	assert.NotContains(t, string(data), "0001-01-01", "an unknown end time must not surface as the zero time")
}

func TestWriteEmptyResult(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, Write(&models.ExtractionResult{}, dest, FormatJSON))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestWriteMissingDirectory(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "no", "such", "dir", "out.json")

	err := Write(resultFixture(), dest, FormatJSON)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "failed export must not leave a file behind")
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(resultFixture(), filepath.Join(dir, "out.json"), FormatJSON))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.json", entries[0].Name())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
