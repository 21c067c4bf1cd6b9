package analyze

import (
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/models"
)

// walletKey groups events by user and wallet for continuity checks.
type walletKey struct {
	userID   string
	walletID string
}

// applyFlowChecks verifies balance continuity within each (user, wallet)
// group: a record's newBalance should reappear as the next record's
// oldBalance. Each group is sorted chronologically, then compared pairwise;
// no implicit ordering from the grouping step is relied on.
//
// Records missing a user or wallet identifier are excluded and keep
// FlowBreak = false.
func (a *Analyzer) applyFlowChecks(events []*models.EnrichedRecord) {
	groups := make(map[walletKey][]*models.EnrichedRecord)
	for _, e := range events {
		if !e.Record.HasUser() || !e.Record.HasWallet() {
			continue
		}
		key := walletKey{userID: e.Record.UserID, walletID: e.Record.WalletID}
		groups[key] = append(groups[key], e)
	}

	breaks := 0
	for _, group := range groups {
		sortChronological(group)
		for i := 0; i < len(group)-1; i++ {
			cur, next := group[i], group[i+1]
			cur.NextOld = next.OldBalance
			if !cur.NewBalance.Valid || !next.OldBalance.Valid {
				continue
			}
			diff := cur.NewBalance.Decimal.Sub(next.OldBalance.Decimal).Abs()
			if diff.GreaterThan(a.config.Tolerance) {
				cur.FlowBreak = true
				breaks++
			}
		}
	}

	if breaks > 0 {
		a.logger.WithField("flow_breaks", breaks).Debug("Detected balance continuity breaks")
	}
}
