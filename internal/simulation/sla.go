package simulation

import "backlog-mcp/internal/backlog"

// slaTracker accumulates penalty cost and satisfaction impact across a run.
// Breach detection is monotonic: a breached item stays breached even if it
// is resolved later.
type slaTracker struct {
	totalPenalty       float64
	totalSatisfaction  float64
	totalBreachedItems int
}

// ScanBreaches marks pending items past their due day and returns the ones
// newly breached today.
func (t *slaTracker) ScanBreaches(pending []*backlog.Item, day int) []*backlog.Item {
	var newly []*backlog.Item
	for _, it := range pending {
		if it.Breached || it.DueDay >= day {
			continue
		}
		it.Breached = true
		newly = append(newly, it)
	}
	t.totalBreachedItems += len(newly)
	return newly
}

// AccrueCost charges the daily penalty for every pending item currently in
// breach and the one-off satisfaction impact for items newly breached
// today. It returns the day's deltas.
func (t *slaTracker) AccrueCost(pending []*backlog.Item, newlyBreached int, profile *backlog.Profile) (penaltyDelta, satisfactionDelta float64) {
	inBreach := 0
	for _, it := range pending {
		if it.Breached && it.Status == backlog.StatusPending {
			inBreach++
		}
	}
	penaltyDelta = float64(inBreach) * profile.SLAPenaltyPerDay
	satisfactionDelta = float64(newlyBreached) * profile.CustomerSatisfactionImpact
	t.totalPenalty += penaltyDelta
	t.totalSatisfaction += satisfactionDelta
	return penaltyDelta, satisfactionDelta
}
