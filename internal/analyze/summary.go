package analyze

import (
	"sort"

	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/models"
)

// summarize aggregates enriched events into one summary row per user,
// ordered by user id for reproducible output. Records without a user id are
// excluded.
func (a *Analyzer) summarize(events []*models.EnrichedRecord) []*models.UserSummary {
	byUser := make(map[string][]*models.EnrichedRecord)
	for _, e := range events {
		if !e.Record.HasUser() {
			continue
		}
		byUser[e.Record.UserID] = append(byUser[e.Record.UserID], e)
	}

	userIDs := make([]string, 0, len(byUser))
	for id := range byUser {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	summaries := make([]*models.UserSummary, 0, len(userIDs))
	for _, id := range userIDs {
		summaries = append(summaries, a.summarizeUser(id, byUser[id]))
	}
	return summaries
}

// summarizeUser computes one user's aggregate row. The group is ordered
// chronologically so that "last balance" means the newBalance of the latest
// record that has one.
func (a *Analyzer) summarizeUser(userID string, group []*models.EnrichedRecord) *models.UserSummary {
	ordered := make([]*models.EnrichedRecord, len(group))
	copy(ordered, group)
	sortChronological(ordered)

	s := &models.UserSummary{
		UserID: userID,
		Events: len(ordered),
	}

	for _, e := range ordered {
		if e.HasTS() {
			if s.FirstTS.IsZero() || e.TS.Before(s.FirstTS) {
				s.FirstTS = e.TS
			}
			if s.LastTS.IsZero() || e.TS.After(s.LastTS) {
				s.LastTS = e.TS
			}
		}

		if e.OverdraftAfter {
			s.OverdraftEvents++
		}
		if e.OverdraftCross {
			s.OverdraftCrossings++
		}
		if e.Mismatch {
			s.Mismatches++
		}
		if e.FlowBreak {
			s.FlowBreaks++
		}

		if e.NewBalance.Valid {
			s.LastBalance = e.NewBalance
			if !s.MinBalance.Valid || e.NewBalance.Decimal.LessThan(s.MinBalance.Decimal) {
				s.MinBalance = e.NewBalance
			}
			if !s.MaxBalance.Valid || e.NewBalance.Decimal.GreaterThan(s.MaxBalance.Decimal) {
				s.MaxBalance = e.NewBalance
			}
		}
	}

	s.FinalOverdraft = s.LastBalance.Valid && s.LastBalance.Decimal.IsNegative()
	return s
}
