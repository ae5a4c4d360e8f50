package simulation

import (
	"backlog-mcp/internal/backlog"
	"backlog-mcp/internal/stats"
)

// ageBucketLabels bucket pending wait times for the snapshot breakdown.
var ageBucketLabels = []string{"0-2", "3-7", "8-14", "15+"}

func ageBucket(ageDays int) string {
	switch {
	case ageDays <= 2:
		return ageBucketLabels[0]
	case ageDays <= 7:
		return ageBucketLabels[1]
	case ageDays <= 14:
		return ageBucketLabels[2]
	default:
		return ageBucketLabels[3]
	}
}

// Snapshot is the end-of-day aggregate for one simulated day. Each
// snapshot is both a report record and, implicitly, the previous-day state
// for the next iteration.
type Snapshot struct {
	Day                int                      `json:"day"`
	TotalPending       int                      `json:"total_pending"`
	PendingByPriority  map[backlog.Priority]int `json:"pending_by_priority"`
	PendingByAgeBucket map[string]int           `json:"pending_by_age_bucket"`

	IntakeToday     int `json:"intake_today"`
	ResolvedToday   int `json:"resolved_today"`
	RejectedToday   int `json:"rejected_today"`
	OutsourcedToday int `json:"outsourced_today"`
	DecayedToday    int `json:"decayed_today"`
	EscalatedToday  int `json:"escalated_today"`

	BreachedToday int `json:"breached_today"`
	BreachedTotal int `json:"breached_total"`
	// SLACompliancePct is the share of all items created so far that have
	// never breached their due day.
	SLACompliancePct             float64 `json:"sla_compliance_pct"`
	CumulativePenalty            float64 `json:"cumulative_penalty"`
	CumulativeSatisfactionImpact float64 `json:"cumulative_satisfaction_impact"`

	AvgWaitDays     float64 `json:"avg_wait_days"`
	LongestWaitDays int     `json:"longest_wait_days"`

	EffectiveCapacityHours float64 `json:"effective_capacity_hours"`
	ConsumedHours          float64 `json:"consumed_hours"`
	// OutsourcedCostHours is the implicit external cost of items pushed to
	// outside capacity today; it never consumes internal hours.
	OutsourcedCostHours float64 `json:"outsourced_cost_hours"`
}

// dayTally collects the per-day counters the engine accumulates while
// stepping through the daily pipeline.
type dayTally struct {
	intake         int
	resolved       int
	rejected       int
	outsourced     int
	decayed        int
	escalated      int
	breached       int
	effectiveHours float64
	consumedHours  float64
	outsourcedCost float64
}

func buildSnapshot(day int, items []*backlog.Item, tally dayTally, tracker *slaTracker) Snapshot {
	snap := Snapshot{
		Day:                day,
		PendingByPriority:  make(map[backlog.Priority]int),
		PendingByAgeBucket: make(map[string]int),

		IntakeToday:     tally.intake,
		ResolvedToday:   tally.resolved,
		RejectedToday:   tally.rejected,
		OutsourcedToday: tally.outsourced,
		DecayedToday:    tally.decayed,
		EscalatedToday:  tally.escalated,

		BreachedToday:                tally.breached,
		CumulativePenalty:            stats.Round(tracker.totalPenalty, 2),
		CumulativeSatisfactionImpact: stats.Round(tracker.totalSatisfaction, 2),

		EffectiveCapacityHours: stats.Round(tally.effectiveHours, 2),
		ConsumedHours:          stats.Round(tally.consumedHours, 2),
		OutsourcedCostHours:    stats.Round(tally.outsourcedCost, 2),
	}

	breachedTotal := 0
	waitSum := 0
	for _, it := range items {
		if it.Breached {
			breachedTotal++
		}
		if it.Status != backlog.StatusPending {
			continue
		}
		snap.TotalPending++
		snap.PendingByPriority[it.Priority]++
		snap.PendingByAgeBucket[ageBucket(it.AgeDays)]++
		waitSum += it.AgeDays
		if it.AgeDays > snap.LongestWaitDays {
			snap.LongestWaitDays = it.AgeDays
		}
	}
	snap.BreachedTotal = breachedTotal

	if snap.TotalPending > 0 {
		snap.AvgWaitDays = stats.Round(float64(waitSum)/float64(snap.TotalPending), 2)
	}
	if len(items) > 0 {
		snap.SLACompliancePct = stats.Round(float64(len(items)-breachedTotal)/float64(len(items))*100, 2)
	} else {
		snap.SLACompliancePct = 100
	}
	return snap
}

// Summary is the aggregate view over a whole run.
type Summary struct {
	StartDay int   `json:"start_day"`
	EndDay   int   `json:"end_day"`
	Seed     int64 `json:"seed"`

	TotalCreated    int `json:"total_created"`
	TotalResolved   int `json:"total_resolved"`
	TotalRejected   int `json:"total_rejected"`
	TotalOutsourced int `json:"total_outsourced"`
	TotalDecayed    int `json:"total_decayed"`
	FinalPending    int `json:"final_pending"`
	TotalBreached   int `json:"total_breached"`

	PeakBacklog    int `json:"peak_backlog"`
	PeakBacklogDay int `json:"peak_backlog_day"`
	// MedianDailyPending is the median of the end-of-day pending counts,
	// a peak-insensitive view of where the backlog sat for most of the run.
	MedianDailyPending float64 `json:"median_daily_pending"`

	FinalSLACompliancePct   float64 `json:"final_sla_compliance_pct"`
	TotalPenalty            float64 `json:"total_penalty"`
	TotalSatisfactionImpact float64 `json:"total_satisfaction_impact"`
	OutsourcedCostHours     float64 `json:"outsourced_cost_hours"`

	AvgResolutionAgeDays float64 `json:"avg_resolution_age_days"`

	// PendingRunChart is the end-of-day pending count series, one entry
	// per simulated day.
	PendingRunChart []int `json:"pending_run_chart"`
}

// Result is the full output of one simulation run.
type Result struct {
	Snapshots  []Snapshot     `json:"snapshots"`
	FinalItems []backlog.Item `json:"final_items"`
	Summary    Summary        `json:"summary"`
}

func buildSummary(startDay, endDay int, seed int64, snapshots []Snapshot, items []*backlog.Item, tracker *slaTracker) Summary {
	s := Summary{
		StartDay:                startDay,
		EndDay:                  endDay,
		Seed:                    seed,
		TotalCreated:            len(items),
		TotalPenalty:            stats.Round(tracker.totalPenalty, 2),
		TotalSatisfactionImpact: stats.Round(tracker.totalSatisfaction, 2),
		PeakBacklogDay:          startDay,
	}

	resolutionAges := 0
	for _, it := range items {
		switch it.Status {
		case backlog.StatusPending:
			s.FinalPending++
		case backlog.StatusResolved:
			s.TotalResolved++
			resolutionAges += it.AgeDays
		case backlog.StatusRejected:
			s.TotalRejected++
		case backlog.StatusOutsourced:
			s.TotalOutsourced++
		case backlog.StatusDecayed:
			s.TotalDecayed++
		}
		if it.Breached {
			s.TotalBreached++
		}
	}
	if s.TotalResolved > 0 {
		s.AvgResolutionAgeDays = stats.Round(float64(resolutionAges)/float64(s.TotalResolved), 2)
	}

	s.PendingRunChart = make([]int, 0, len(snapshots))
	for _, snap := range snapshots {
		s.PendingRunChart = append(s.PendingRunChart, snap.TotalPending)
		if snap.TotalPending > s.PeakBacklog {
			s.PeakBacklog = snap.TotalPending
			s.PeakBacklogDay = snap.Day
		}
		s.OutsourcedCostHours += snap.OutsourcedCostHours
		s.FinalSLACompliancePct = snap.SLACompliancePct
	}
	s.OutsourcedCostHours = stats.Round(s.OutsourcedCostHours, 2)
	s.MedianDailyPending = stats.MedianDiscrete(s.PendingRunChart)
	return s
}
