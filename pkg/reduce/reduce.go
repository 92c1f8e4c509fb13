// Package reduce transforms Oura API payloads into bounded shapes fit for
// a token-constrained consumer.
//
// Record-kind reducers (sleep, activity, readiness, workout) project each
// record onto a fixed field subset, preserving record order and count. The
// heart rate reducer is different: the upstream series is unbounded
// (sub-minute samples), so it collapses the whole series into a single
// summary object whose size is independent of the sample count.
package reduce

import (
	"math"

	"github.com/halcyon-health/oura-mcp-server/pkg/oura"
)

// SleepData is the reduced sleep payload.
type SleepData struct {
	Data []SleepEntry `json:"data"`
}

// SleepEntry is the declared field subset for one sleep session.
type SleepEntry struct {
	Day                string  `json:"day"`
	BedtimeStart       string  `json:"bedtime_start"`
	BedtimeEnd         string  `json:"bedtime_end"`
	TotalSleepDuration int     `json:"total_sleep_duration"`
	DeepSleepDuration  int     `json:"deep_sleep_duration"`
	RemSleepDuration   int     `json:"rem_sleep_duration"`
	LightSleepDuration int     `json:"light_sleep_duration"`
	AwakeTime          int     `json:"awake_time"`
	Efficiency         int     `json:"efficiency"`
	Latency            int     `json:"latency"`
	SleepPhase5Min     string  `json:"sleep_phase_5_min"`
	AverageHeartRate   float64 `json:"average_heart_rate"`
	LowestHeartRate    int     `json:"lowest_heart_rate"`
	AverageHRV         float64 `json:"average_hrv"`
}

// Sleep projects sleep records onto the declared subset.
func Sleep(resp *oura.SleepResponse) SleepData {
	out := SleepData{Data: make([]SleepEntry, 0, len(resp.Data))}
	for _, r := range resp.Data {
		out.Data = append(out.Data, SleepEntry{
			Day:                r.Day,
			BedtimeStart:       r.BedtimeStart,
			BedtimeEnd:         r.BedtimeEnd,
			TotalSleepDuration: r.TotalSleepDuration,
			DeepSleepDuration:  r.DeepSleepDuration,
			RemSleepDuration:   r.RemSleepDuration,
			LightSleepDuration: r.LightSleepDuration,
			AwakeTime:          r.AwakeTime,
			Efficiency:         r.Efficiency,
			Latency:            r.Latency,
			SleepPhase5Min:     r.SleepPhase5Min,
			AverageHeartRate:   r.AverageHeartRate,
			LowestHeartRate:    r.LowestHeartRate,
			AverageHRV:         r.AverageHRV,
		})
	}
	return out
}

// ActivityData is the reduced daily activity payload.
type ActivityData struct {
	Data []ActivityEntry `json:"data"`
}

// ActivityEntry is the declared field subset for one day of activity.
type ActivityEntry struct {
	Day                string `json:"day"`
	Score              int    `json:"score"`
	Steps              int    `json:"steps"`
	ActiveCalories     int    `json:"active_calories"`
	TotalCalories      int    `json:"total_calories"`
	HighActivityTime   int    `json:"high_activity_time"`
	MediumActivityTime int    `json:"medium_activity_time"`
	LowActivityTime    int    `json:"low_activity_time"`
	SedentaryTime      int    `json:"sedentary_time"`
	RestingTime        int    `json:"resting_time"`
}

// Activity projects daily activity records onto the declared subset.
func Activity(resp *oura.ActivityResponse) ActivityData {
	out := ActivityData{Data: make([]ActivityEntry, 0, len(resp.Data))}
	for _, r := range resp.Data {
		out.Data = append(out.Data, ActivityEntry{
			Day:                r.Day,
			Score:              r.Score,
			Steps:              r.Steps,
			ActiveCalories:     r.ActiveCalories,
			TotalCalories:      r.TotalCalories,
			HighActivityTime:   r.HighActivityTime,
			MediumActivityTime: r.MediumActivityTime,
			LowActivityTime:    r.LowActivityTime,
			SedentaryTime:      r.SedentaryTime,
			RestingTime:        r.RestingTime,
		})
	}
	return out
}

// ReadinessData is the reduced readiness payload.
type ReadinessData struct {
	Data []ReadinessEntry `json:"data"`
}

// ReadinessEntry is the declared field subset for one readiness score.
type ReadinessEntry struct {
	Day                       string                     `json:"day"`
	Score                     int                        `json:"score"`
	TemperatureDeviation      float64                    `json:"temperature_deviation"`
	TemperatureTrendDeviation float64                    `json:"temperature_trend_deviation"`
	Contributors              oura.ReadinessContributors `json:"contributors"`
}

// Readiness projects readiness records onto the declared subset.
func Readiness(resp *oura.ReadinessResponse) ReadinessData {
	out := ReadinessData{Data: make([]ReadinessEntry, 0, len(resp.Data))}
	for _, r := range resp.Data {
		out.Data = append(out.Data, ReadinessEntry{
			Day:                       r.Day,
			Score:                     r.Score,
			TemperatureDeviation:      r.TemperatureDeviation,
			TemperatureTrendDeviation: r.TemperatureTrendDeviation,
			Contributors:              r.Contributors,
		})
	}
	return out
}

// WorkoutData is the reduced workout payload.
type WorkoutData struct {
	Data []WorkoutEntry `json:"data"`
}

// WorkoutEntry is the declared field subset for one workout session.
type WorkoutEntry struct {
	Day           string  `json:"day"`
	Activity      string  `json:"activity"`
	Calories      float64 `json:"calories"`
	Distance      float64 `json:"distance"`
	StartDatetime string  `json:"start_datetime"`
	EndDatetime   string  `json:"end_datetime"`
	Intensity     string  `json:"intensity"`
}

// Workouts projects workout records onto the declared subset.
func Workouts(resp *oura.WorkoutResponse) WorkoutData {
	out := WorkoutData{Data: make([]WorkoutEntry, 0, len(resp.Data))}
	for _, r := range resp.Data {
		out.Data = append(out.Data, WorkoutEntry{
			Day:           r.Day,
			Activity:      r.Activity,
			Calories:      r.Calories,
			Distance:      r.Distance,
			StartDatetime: r.StartDatetime,
			EndDatetime:   r.EndDatetime,
			Intensity:     r.Intensity,
		})
	}
	return out
}

// HeartRateData wraps the heart rate summary.
type HeartRateData struct {
	Summary HeartRateSummary `json:"summary"`
}

// HeartRateSummary aggregates an arbitrarily long sample series into a
// fixed-size shape. All fields except Count are pointers so they are
// omitted only for the empty series, never for a legitimate zero value
// (a zero-bpm artifact sample must still produce a min_bpm key).
type HeartRateSummary struct {
	Count          int     `json:"count"`
	MinBPM         *int    `json:"min_bpm,omitempty"`
	MaxBPM         *int    `json:"max_bpm,omitempty"`
	AvgBPM         *int    `json:"avg_bpm,omitempty"`
	FirstTimestamp *string `json:"first_timestamp,omitempty"`
	LastTimestamp  *string `json:"last_timestamp,omitempty"`
}

// HeartRate summarizes the sample series in a single pass: count, min,
// max, mean rounded to the nearest integer, and the first and last sample
// timestamps. An empty series yields a summary with count zero and no
// other fields.
func HeartRate(resp *oura.HeartRateResponse) HeartRateData {
	records := resp.Data
	if len(records) == 0 {
		return HeartRateData{Summary: HeartRateSummary{Count: 0}}
	}

	minBPM := records[0].BPM
	maxBPM := records[0].BPM
	sum := 0
	for _, r := range records {
		if r.BPM < minBPM {
			minBPM = r.BPM
		}
		if r.BPM > maxBPM {
			maxBPM = r.BPM
		}
		sum += r.BPM
	}

	avgBPM := int(math.Round(float64(sum) / float64(len(records))))
	return HeartRateData{Summary: HeartRateSummary{
		Count:          len(records),
		MinBPM:         &minBPM,
		MaxBPM:         &maxBPM,
		AvgBPM:         &avgBPM,
		FirstTimestamp: &records[0].Timestamp,
		LastTimestamp:  &records[len(records)-1].Timestamp,
	}}
}
