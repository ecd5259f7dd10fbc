// ABOUTME: Typed Activity, Lap, and Sample entities for exported data.
// ABOUTME: Optional metrics are pointers so absent values never read as zero.
package models

import "time"

// Activity is one recorded training session. It is built once by the
// mapper and never partially updated. Laps and Samples belong to
// exactly this activity.
type Activity struct {
	LabelID   string    `json:"label_id" yaml:"label_id"`
	Name      string    `json:"name" yaml:"name"`
	SportType int       `json:"sport_type" yaml:"sport_type"`
	Sport     string    `json:"sport" yaml:"sport"`
	StartTime time.Time  `json:"start_time" yaml:"start_time"`
	EndTime   *time.Time `json:"end_time" yaml:"end_time"`

	// Durations in seconds, distances in meters. Beyond the identifier,
	// start time, and sport, every metric is nil when the payload did
	// not carry it; zero always means a recorded zero.
	TotalTime   *int     `json:"total_time" yaml:"total_time"`
	WorkoutTime *int     `json:"workout_time" yaml:"workout_time"`
	Distance    *float64 `json:"distance" yaml:"distance"`
	Calories    *int     `json:"calories" yaml:"calories"`

	// Aggregates the device may or may not have recorded. Speeds are
	// m/s, paces are seconds per kilometer, elevations meters.
	AvgHeartRate  *int     `json:"avg_heart_rate" yaml:"avg_heart_rate"`
	MaxHeartRate  *int     `json:"max_heart_rate" yaml:"max_heart_rate"`
	AvgCadence    *int     `json:"avg_cadence" yaml:"avg_cadence"`
	MaxCadence    *int     `json:"max_cadence" yaml:"max_cadence"`
	AvgPace       *float64 `json:"avg_pace" yaml:"avg_pace"`
	AdjustedPace  *float64 `json:"adjusted_pace" yaml:"adjusted_pace"`
	AvgSpeed      *float64 `json:"avg_speed" yaml:"avg_speed"`
	MaxSpeed      *float64 `json:"max_speed" yaml:"max_speed"`
	AvgStepLength *float64 `json:"avg_step_length" yaml:"avg_step_length"`
	ElevGain      *float64 `json:"elev_gain" yaml:"elev_gain"`
	ElevLoss      *float64 `json:"elev_loss" yaml:"elev_loss"`
	TrainingLoad  *int     `json:"training_load" yaml:"training_load"`

	Laps    []Lap    `json:"laps" yaml:"laps"`
	Samples []Sample `json:"samples" yaml:"samples"`
}

// Lap is one device- or user-defined segment of an activity, ordered by
// Index within its parent.
type Lap struct {
	Index     int        `json:"index" yaml:"index"`
	StartTime time.Time  `json:"start_time" yaml:"start_time"`
	EndTime   *time.Time `json:"end_time" yaml:"end_time"`
	Distance  *float64   `json:"distance" yaml:"distance"`
	Duration  *float64   `json:"duration" yaml:"duration"`

	AvgHeartRate    *int     `json:"avg_heart_rate" yaml:"avg_heart_rate"`
	AvgCadence      *int     `json:"avg_cadence" yaml:"avg_cadence"`
	AvgPace         *float64 `json:"avg_pace" yaml:"avg_pace"`
	AvgPower        *int     `json:"avg_power" yaml:"avg_power"`
	AvgStrideLength *float64 `json:"avg_stride_length" yaml:"avg_stride_length"`
	Calories        *int     `json:"calories" yaml:"calories"`
}

// Sample is one timestamped point of an activity's time series, ordered
// by Time within its parent. Devices do not record every channel on
// every activity, so every channel is optional.
type Sample struct {
	Time time.Time `json:"time" yaml:"time"`

	HeartRate     *int     `json:"heart_rate" yaml:"heart_rate"`
	HeartRateZone *int     `json:"heart_rate_zone" yaml:"heart_rate_zone"`
	Cadence       *int     `json:"cadence" yaml:"cadence"`
	Distance      *float64 `json:"distance" yaml:"distance"`
}

// ExtractionResult is the ordered collection of activities from one
// run. Order matches the remote listing order.
type ExtractionResult struct {
	Activities []Activity
}

// Add appends an activity, preserving listing order.
func (r *ExtractionResult) Add(a Activity) {
	r.Activities = append(r.Activities, a)
}

// Len returns the number of extracted activities.
func (r *ExtractionResult) Len() int {
	return len(r.Activities)
}
