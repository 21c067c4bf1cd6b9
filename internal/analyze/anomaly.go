package analyze

import (
	"math"

	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/models"
)

// applyAnomalyDetection flags deltas that are statistical outliers within a
// user's history. A user needs at least AnomalyMinSamples known deltas;
// below that, or when the sample standard deviation is zero, nothing is
// flagged for that user.
//
// The z-score math runs on float64: the thresholds here are statistical,
// not monetary, so decimal exactness buys nothing.
func (a *Analyzer) applyAnomalyDetection(events []*models.EnrichedRecord) {
	byUser := make(map[string][]*models.EnrichedRecord)
	for _, e := range events {
		if !e.Record.HasUser() {
			continue
		}
		byUser[e.Record.UserID] = append(byUser[e.Record.UserID], e)
	}

	flagged := 0
	for _, group := range byUser {
		var deltas []float64
		for _, e := range group {
			if e.Delta.Valid {
				deltas = append(deltas, e.Delta.Decimal.InexactFloat64())
			}
		}
		if len(deltas) < a.config.AnomalyMinSamples {
			continue
		}

		mean, sd := sampleStats(deltas)
		if sd == 0 {
			continue
		}

		limit := a.config.AnomalySigma * sd
		for _, e := range group {
			if !e.Delta.Valid {
				continue
			}
			if math.Abs(e.Delta.Decimal.InexactFloat64()-mean) > limit {
				e.DeltaAnomaly = true
				flagged++
			}
		}
	}

	if flagged > 0 {
		a.logger.WithField("delta_anomalies", flagged).Debug("Detected delta outliers")
	}
}

// sampleStats returns the mean and sample standard deviation (n-1
// denominator) of vals. Callers guarantee len(vals) >= 2.
func sampleStats(vals []float64) (mean, sd float64) {
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))

	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	sd = math.Sqrt(ss / float64(len(vals)-1))
	return mean, sd
}
