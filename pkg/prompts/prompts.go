// Package prompts synthesizes the textual instruction messages behind the
// prompt catalog. All functions are pure in (arguments, reference time).
//
// Date handling follows Oura's convention: a sleep record's day is the
// wake-up date, not the date the wearer went to bed. Every generated
// instruction that touches sleep data therefore asks for a date range
// ending on the target day rather than a single-day point query, so the
// most recent night is never missed.
package prompts

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultTrendDays is the lookback window used by the sleep trend analysis
// prompt when no days argument is given.
const DefaultTrendDays = 7

const dateLayout = "2006-01-02"

// AnalyzeSleepTrends builds the instruction message for the
// analyze_sleep_trends prompt. The days argument is parsed as an integer
// lookback window; unparseable or non-positive input falls back to
// DefaultTrendDays.
func AnalyzeSleepTrends(now time.Time, days string) string {
	n := DefaultTrendDays
	if days != "" {
		if parsed, err := strconv.Atoi(days); err == nil && parsed > 0 {
			n = parsed
		}
	}

	start := now.AddDate(0, 0, -n).Format(dateLayout)
	today := now.Format(dateLayout)

	return fmt.Sprintf(`Please analyze my sleep trends over the last %d days. Use get_sleep_data to retrieve my sleep data from %s to %s (sleep records are filed under the wake-up date, so this range includes last night), then provide insights on:
1. Sleep duration patterns
2. Sleep quality and efficiency
3. Sleep stage distribution
4. Recommendations for improvement`, n, start, today)
}

// DailyHealthSummary builds the instruction message for the
// daily_health_summary prompt. The date argument defaults to today when
// empty; it is passed through as-is otherwise.
func DailyHealthSummary(now time.Time, date string) string {
	if date == "" {
		date = now.Format(dateLayout)
	}

	// Sleep for a given day is recorded under the wake-up date; query a
	// range from the prior day so the night leading into the target date
	// is covered even if the record landed on either boundary.
	sleepStart := date
	if parsed, err := time.Parse(dateLayout, date); err == nil {
		sleepStart = parsed.AddDate(0, 0, -1).Format(dateLayout)
	}

	return fmt.Sprintf(`Please create a comprehensive health summary for %s. Use the following tools:
- get_sleep_data with start_date %s and end_date %s (sleep is filed under the wake-up date)
- get_activity_data for %s
- get_readiness_data for %s

Then provide a summary covering:
1. Overall readiness and recovery
2. Sleep quality and duration
3. Activity levels and energy expenditure
4. Key insights and recommendations`, date, sleepStart, date, date, date)
}
