package domain

// Exp bar name constants - stable identifiers for the parallel progression tracks.
// Overall aggregates the others; the rest map 1:1 to a gameplay mod.
const (
	BarOverall    = "Overall"
	BarNoMod      = "NM"
	BarHidden     = "HD"
	BarHardRock   = "HR"
	BarDoubleTime = "DT"
	BarHalfTime   = "HT"
)

// ExpBarNames lists every exp bar in display order. The reward pipeline and the
// persistence schema are both validated against this set at startup.
var ExpBarNames = []string{BarOverall, BarNoMod, BarHidden, BarHardRock, BarDoubleTime, BarHalfTime}

// TrackForMod maps a scored mod acronym to the exp bar it feeds.
// NC and DC have no bar of their own; they count as DT and HT respectively.
var TrackForMod = map[string]string{
	"HD": BarHidden,
	"HR": BarHardRock,
	"DT": BarDoubleTime,
	"NC": BarDoubleTime,
	"HT": BarHalfTime,
	"DC": BarHalfTime,
}

// ExpPerLevelStep is the increment of the per-level exp requirement.
// Level 1->2 costs 50, 2->3 costs 100, and so on (triangular growth).
const ExpPerLevelStep = 50

// ExpBar represents one experience track for a user.
// Level, ProgressToNext and RequiredForNext are derived from TotalExp.
type ExpBar struct {
	TotalExp        int `json:"total_exp"`
	Level           int `json:"level"`
	ProgressToNext  int `json:"progress_to_next"`
	RequiredForNext int `json:"required_for_next"`
}

// NewExpBar creates an exp bar from a total and derives the level fields.
func NewExpBar(totalExp int) ExpBar {
	b := ExpBar{TotalExp: totalExp}
	b.recompute()
	return b
}

// AddExp adds exp to the bar and recomputes the derived fields.
// Negative deltas indicate a programming error upstream.
func (b *ExpBar) AddExp(amount int) {
	if amount < 0 {
		panic("expbar: negative exp delta")
	}
	b.TotalExp += amount
	b.recompute()
}

// recompute deducts the requirement for each level from the total until the
// remainder no longer covers the next level. The requirement grows without
// bound so the loop always terminates.
func (b *ExpBar) recompute() {
	remaining := b.TotalExp
	level := 1
	required := ExpPerLevelStep

	for remaining >= required {
		remaining -= required
		level++
		required += ExpPerLevelStep
	}

	b.Level = level
	b.ProgressToNext = remaining
	b.RequiredForNext = required
}

// ExpBars maps bar names to exp bars. Value semantics: Clone before mutating
// so before/after snapshots never alias.
type ExpBars map[string]ExpBar

// NewExpBars returns a zeroed bar set covering every name in ExpBarNames.
func NewExpBars() ExpBars {
	bars := make(ExpBars, len(ExpBarNames))
	for _, name := range ExpBarNames {
		bars[name] = NewExpBar(0)
	}
	return bars
}

// Clone returns an independent copy of the bar set.
func (bars ExpBars) Clone() ExpBars {
	out := make(ExpBars, len(bars))
	for name, bar := range bars {
		out[name] = bar
	}
	return out
}
