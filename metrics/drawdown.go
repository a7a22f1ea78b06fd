package metrics

import (
	"time"

	"github.com/rustyeddy/folio/ledger"
)

// DrawdownPoint is the percent decline from the running peak at one
// snapshot. Values are zero or negative.
type DrawdownPoint struct {
	Time     time.Time
	Value    float64
	Peak     float64
	Drawdown float64
}

// Drawdowns walks history in order, tracking the running peak.
func Drawdowns(history []ledger.Snapshot) []DrawdownPoint {
	out := make([]DrawdownPoint, 0, len(history))
	var peak float64
	for i, s := range history {
		if i == 0 || s.Value > peak {
			peak = s.Value
		}
		p := DrawdownPoint{Time: s.Time, Value: s.Value, Peak: peak}
		if peak > 0 && s.Value < peak {
			p.Drawdown = -((peak - s.Value) / peak) * 100
		}
		out = append(out, p)
	}
	return out
}

// MaxDrawdown is the most negative drawdown in history, or 0 with fewer
// than two snapshots.
func MaxDrawdown(history []ledger.Snapshot) float64 {
	if len(history) < 2 {
		return 0
	}
	var worst float64
	for _, p := range Drawdowns(history) {
		if p.Drawdown < worst {
			worst = p.Drawdown
		}
	}
	return worst
}
