// ABOUTME: Pure mapping from raw Coros detail payloads to typed entities.
// ABOUTME: The single place where untyped API JSON is validated and normalized.
package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/coroshub/coroshub/internal/coros"
	"github.com/coroshub/coroshub/internal/models"
)

// MappingError reports a required field that was missing or malformed
// in a raw activity payload. Absent optional fields are not errors.
type MappingError struct {
	LabelID string
	Field   string
	Reason  string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("activity %s: map %s: %s", e.LabelID, e.Field, e.Reason)
}

// rawSummary mirrors the summary fragment of the detail payload. Every
// field is a pointer so absence is distinguishable from zero.
type rawSummary struct {
	Name           *string  `json:"name"`
	SportType      *int     `json:"sportType"`
	StartTimestamp *int64   `json:"startTimestamp"`
	EndTimestamp   *int64   `json:"endTimestamp"`
	TotalTime      *int     `json:"totalTime"`
	WorkoutTime    *int     `json:"workoutTime"`
	Distance       *float64 `json:"distance"`
	Calories       *int     `json:"calories"`
	AvgHr          *int     `json:"avgHr"`
	MaxHr          *int     `json:"maxHr"`
	AvgCadence     *int     `json:"avgCadence"`
	MaxCadence     *int     `json:"maxCadence"`
	AvgPace        *float64 `json:"avgPace"`
	AdjustedPace   *float64 `json:"adjustedPace"`
	AvgSpeed       *float64 `json:"avgSpeed"`
	MaxSpeed       *float64 `json:"maxSpeed"`
	AvgStepLen     *float64 `json:"avgStepLen"`
	ElevGain       *float64 `json:"elevGain"`
	ElevLoss       *float64 `json:"elevLoss"`
	TrainingLoad   *int     `json:"trainingLoad"`
}

// rawLapGroup is one entry of lapList. Lap items live under running-type
// groups; other group types carry no lap breakdown today.
type rawLapGroup struct {
	Type        int      `json:"type"`
	LapItemList []rawLap `json:"lapItemList"`
}

type rawLap struct {
	LapIndex        *int     `json:"lapIndex"`
	StartTimestamp  *int64   `json:"startTimestamp"`
	EndTimestamp    *int64   `json:"endTimestamp"`
	Distance        *float64 `json:"distance"`
	AvgHr           *int     `json:"avgHr"`
	AvgCadence      *int     `json:"avgCadence"`
	AvgPace         *float64 `json:"avgPace"`
	AvgPower        *int     `json:"avgPower"`
	AvgStrideLength *float64 `json:"avgStrideLength"`
	Calories        *int     `json:"calories"`
}

// rawSample is one entry of frequencyList.
type rawSample struct {
	Timestamp  *int64   `json:"timestamp"`
	Heart      *int     `json:"heart"`
	HeartLevel *int     `json:"heartLevel"`
	Cadence    *int     `json:"cadence"`
	Distance   *float64 `json:"distance"`
}

// MapActivity converts the raw detail fragments of one activity into a
// typed Activity. It has no side effects and touches no I/O.
//
// Normalization applied here, once for the whole dataset:
//   - summary and lap timestamps arrive as centiseconds since the Unix
//     epoch and become UTC time.Time values
//   - sample timestamps arrive as whole epoch seconds
//   - speeds and step lengths arrive in centi-units and become m/s and
//     meters
//   - laps are reindexed 0-based in device lap order, samples are
//     ordered by time
func MapActivity(ref coros.ActivityRef, detail *coros.Detail) (*models.Activity, error) {
	if ref.LabelID == "" {
		return nil, &MappingError{LabelID: "?", Field: "labelId", Reason: "missing"}
	}

	summary, err := mapSummary(ref, detail.Summary)
	if err != nil {
		return nil, err
	}

	laps, err := mapLaps(ref.LabelID, detail.LapList)
	if err != nil {
		return nil, err
	}
	summary.Laps = laps

	samples, err := mapSamples(ref.LabelID, detail.FrequencyList)
	if err != nil {
		return nil, err
	}
	summary.Samples = samples

	return summary, nil
}

func mapSummary(ref coros.ActivityRef, raw json.RawMessage) (*models.Activity, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, &MappingError{LabelID: ref.LabelID, Field: "summary", Reason: "missing"}
	}

	var s rawSummary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, &MappingError{LabelID: ref.LabelID, Field: "summary", Reason: err.Error()}
	}
	if s.StartTimestamp == nil {
		return nil, &MappingError{LabelID: ref.LabelID, Field: "summary.startTimestamp", Reason: "missing"}
	}

	sportType := int(ref.SportType)
	if s.SportType != nil {
		sportType = *s.SportType
	}
	name := ref.Name
	if s.Name != nil {
		name = *s.Name
	}

	a := &models.Activity{
		LabelID:   ref.LabelID,
		Name:      name,
		SportType: sportType,
		Sport:     coros.SportType(sportType).Name(),
		StartTime: centisToTime(*s.StartTimestamp),

		TotalTime:   s.TotalTime,
		WorkoutTime: s.WorkoutTime,
		Distance:    s.Distance,
		Calories:    s.Calories,

		AvgHeartRate:  s.AvgHr,
		MaxHeartRate:  s.MaxHr,
		AvgCadence:    s.AvgCadence,
		MaxCadence:    s.MaxCadence,
		AvgPace:       s.AvgPace,
		AdjustedPace:  s.AdjustedPace,
		AvgSpeed:      centiScale(s.AvgSpeed),
		MaxSpeed:      centiScale(s.MaxSpeed),
		AvgStepLength: centiScale(s.AvgStepLen),
		ElevGain:      s.ElevGain,
		ElevLoss:      s.ElevLoss,
		TrainingLoad:  s.TrainingLoad,
	}
	if s.EndTimestamp != nil {
		end := centisToTime(*s.EndTimestamp)
		a.EndTime = &end
	}
	return a, nil
}

func mapLaps(labelID string, raw json.RawMessage) ([]models.Lap, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []models.Lap{}, nil
	}

	var groups []rawLapGroup
	if err := json.Unmarshal(raw, &groups); err != nil {
		return nil, &MappingError{LabelID: labelID, Field: "lapList", Reason: err.Error()}
	}

	laps := []models.Lap{}
	for _, group := range groups {
		if coros.LapType(group.Type) != coros.LapTypeRun {
			continue
		}
		for _, item := range group.LapItemList {
			if item.LapIndex == nil {
				return nil, &MappingError{LabelID: labelID, Field: "lapList.lapIndex", Reason: "missing"}
			}
			if item.StartTimestamp == nil {
				return nil, &MappingError{LabelID: labelID, Field: "lapList.startTimestamp", Reason: "missing"}
			}

			lap := models.Lap{
				Index:     *item.LapIndex,
				StartTime: centisToTime(*item.StartTimestamp),
				Distance:  item.Distance,

				AvgHeartRate:    item.AvgHr,
				AvgCadence:      item.AvgCadence,
				AvgPace:         item.AvgPace,
				AvgPower:        item.AvgPower,
				AvgStrideLength: centiScale(item.AvgStrideLength),
				Calories:        item.Calories,
			}
			if item.EndTimestamp != nil {
				end := centisToTime(*item.EndTimestamp)
				duration := end.Sub(lap.StartTime).Seconds()
				lap.EndTime = &end
				lap.Duration = &duration
			}
			laps = append(laps, lap)
		}
	}

	// Device lap indices are 1-based and scoped per group; reindex into
	// a single 0-based sequence in device order.
	sort.SliceStable(laps, func(i, j int) bool { return laps[i].Index < laps[j].Index })
	for i := range laps {
		laps[i].Index = i
	}
	return laps, nil
}

func mapSamples(labelID string, raw json.RawMessage) ([]models.Sample, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []models.Sample{}, nil
	}

	var items []rawSample
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &MappingError{LabelID: labelID, Field: "frequencyList", Reason: err.Error()}
	}

	samples := make([]models.Sample, 0, len(items))
	for _, item := range items {
		if item.Timestamp == nil {
			return nil, &MappingError{LabelID: labelID, Field: "frequencyList.timestamp", Reason: "missing"}
		}
		samples = append(samples, models.Sample{
			Time:          time.Unix(*item.Timestamp, 0).UTC(),
			HeartRate:     item.Heart,
			HeartRateZone: item.HeartLevel,
			Cadence:       item.Cadence,
			Distance:      item.Distance,
		})
	}

	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Time.Before(samples[j].Time) })
	return samples, nil
}

// centisToTime converts centiseconds since the Unix epoch to UTC time.
func centisToTime(cs int64) time.Time {
	return time.Unix(cs/100, (cs%100)*10_000_000).UTC()
}

// centiScale divides a centi-unit value by 100, preserving absence.
func centiScale(v *float64) *float64 {
	if v == nil {
		return nil
	}
	scaled := *v / 100
	return &scaled
}
