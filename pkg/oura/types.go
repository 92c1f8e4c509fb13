package oura

// The Oura API v2 wraps every collection response in a data envelope with
// an optional pagination token. Records decode only the attributes this
// service consumes; unknown upstream attributes are dropped at decode time.

// SleepResponse is the envelope returned by the sleep collection.
type SleepResponse struct {
	Data      []SleepRecord `json:"data"`
	NextToken string        `json:"next_token,omitempty"`
}

// SleepRecord is a single sleep session. The day attribute is the wake-up
// date: a record for 2026-01-10 describes sleep that ended on the 10th.
type SleepRecord struct {
	ID                 string  `json:"id,omitempty"`
	Day                string  `json:"day"`
	Type               string  `json:"type,omitempty"`
	BedtimeStart       string  `json:"bedtime_start"`
	BedtimeEnd         string  `json:"bedtime_end"`
	TotalSleepDuration int     `json:"total_sleep_duration"`
	DeepSleepDuration  int     `json:"deep_sleep_duration"`
	RemSleepDuration   int     `json:"rem_sleep_duration"`
	LightSleepDuration int     `json:"light_sleep_duration"`
	AwakeTime          int     `json:"awake_time"`
	TimeInBed          int     `json:"time_in_bed,omitempty"`
	Efficiency         int     `json:"efficiency"`
	Latency            int     `json:"latency"`
	RestlessPeriods    int     `json:"restless_periods,omitempty"`
	SleepPhase5Min     string  `json:"sleep_phase_5_min"`
	AverageHeartRate   float64 `json:"average_heart_rate"`
	LowestHeartRate    int     `json:"lowest_heart_rate"`
	AverageHRV         float64 `json:"average_hrv"`
	AverageBreath      float64 `json:"average_breath,omitempty"`
}

// ActivityResponse is the envelope returned by the daily_activity collection.
type ActivityResponse struct {
	Data      []ActivityRecord `json:"data"`
	NextToken string           `json:"next_token,omitempty"`
}

// ActivityRecord is one day of activity metrics.
type ActivityRecord struct {
	ID                        string  `json:"id,omitempty"`
	Day                       string  `json:"day"`
	Score                     int     `json:"score"`
	Steps                     int     `json:"steps"`
	ActiveCalories            int     `json:"active_calories"`
	TotalCalories             int     `json:"total_calories"`
	HighActivityTime          int     `json:"high_activity_time"`
	MediumActivityTime        int     `json:"medium_activity_time"`
	LowActivityTime           int     `json:"low_activity_time"`
	SedentaryTime             int     `json:"sedentary_time"`
	RestingTime               int     `json:"resting_time"`
	NonWearTime               int     `json:"non_wear_time,omitempty"`
	AverageMETMinutes         float64 `json:"average_met_minutes,omitempty"`
	EquivalentWalkingDistance int     `json:"equivalent_walking_distance,omitempty"`
}

// ReadinessResponse is the envelope returned by the daily_readiness collection.
type ReadinessResponse struct {
	Data      []ReadinessRecord `json:"data"`
	NextToken string            `json:"next_token,omitempty"`
}

// ReadinessRecord is one day's readiness score with its contributors.
type ReadinessRecord struct {
	ID                        string                `json:"id,omitempty"`
	Day                       string                `json:"day"`
	Score                     int                   `json:"score"`
	Timestamp                 string                `json:"timestamp,omitempty"`
	TemperatureDeviation      float64               `json:"temperature_deviation"`
	TemperatureTrendDeviation float64               `json:"temperature_trend_deviation"`
	Contributors              ReadinessContributors `json:"contributors"`
}

// ReadinessContributors breaks a readiness score down into its inputs.
type ReadinessContributors struct {
	ActivityBalance     int `json:"activity_balance"`
	BodyTemperature     int `json:"body_temperature"`
	HRVBalance          int `json:"hrv_balance"`
	PreviousDayActivity int `json:"previous_day_activity"`
	PreviousNight       int `json:"previous_night"`
	RecoveryIndex       int `json:"recovery_index"`
	RestingHeartRate    int `json:"resting_heart_rate"`
	SleepBalance        int `json:"sleep_balance"`
}

// HeartRateResponse is the envelope returned by the heartrate collection.
// The series is sampled sub-minute; a single day can contain thousands of
// records.
type HeartRateResponse struct {
	Data      []HeartRateRecord `json:"data"`
	NextToken string            `json:"next_token,omitempty"`
}

// HeartRateRecord is a single heart rate sample.
type HeartRateRecord struct {
	BPM       int    `json:"bpm"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

// WorkoutResponse is the envelope returned by the workout collection.
type WorkoutResponse struct {
	Data      []WorkoutRecord `json:"data"`
	NextToken string          `json:"next_token,omitempty"`
}

// WorkoutRecord is a single workout session.
type WorkoutRecord struct {
	ID            string  `json:"id,omitempty"`
	Day           string  `json:"day"`
	Activity      string  `json:"activity"`
	Calories      float64 `json:"calories"`
	Distance      float64 `json:"distance"`
	StartDatetime string  `json:"start_datetime"`
	EndDatetime   string  `json:"end_datetime"`
	Intensity     string  `json:"intensity"`
	Source        string  `json:"source,omitempty"`
	Label         string  `json:"label,omitempty"`
}
