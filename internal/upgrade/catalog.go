package upgrade

import (
	"fmt"
	"math"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
)

// Upgrade ID constants - stable identifiers shared with the persistence schema.
const (
	IDExpLengthBonus            = "exp_length_bonus"
	IDOverallExpMultiplier      = "overall_exp_gain_multiplier"
	IDNoModExpMultiplier        = "nm_exp_gain_multiplier"
	IDHiddenExpMultiplier       = "hd_exp_gain_multiplier"
	IDHardRockExpMultiplier     = "hr_exp_gain_multiplier"
	IDDoubleTimeExpMultiplier   = "dt_exp_gain_multiplier"
	IDHalfTimeExpMultiplier     = "ht_exp_gain_multiplier"
	IDInfiniteOverallMultiplier = "infinite_overall_exp_gain_multiplier"
	IDTokenGainEfficiency       = "tt_gain_efficiency"
	IDTokenGainMultiplier       = "tt_gain_multiplier"
)

// NewDefaultRegistry builds the live upgrade catalog. Registration order is
// deliberate: it is the tie-break within each priority class.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(&Definition{
		ID:           IDExpLengthBonus,
		Name:         "EXP Length Bonus",
		Description:  "+1 EXP per minute of drain time per level (applies to maps you've fully completed)",
		MaxLevel:     10,
		CostCurrency: domain.CurrencyTaikoTokens,
		Cost:         func(level int) int { return 50 * level * level },
		Category:     CategoryOverallGain,
		Class:        ClassAdditive,
		Apply: func(in *Inputs) {
			if in.Facts.CompleteRun {
				drainMinutes := in.Facts.DrainTime / 60
				in.Gains[domain.BarOverall] += in.Level * drainMinutes
			}
		},
	})

	r.Register(&Definition{
		ID:           IDOverallExpMultiplier,
		Name:         "Overall EXP Gain Multiplier",
		Description:  "+1% Overall EXP gain per level (additive)",
		MaxLevel:     50,
		CostCurrency: domain.CurrencyTaikoTokens,
		Cost:         func(level int) int { return 15 * level },
		Category:     CategoryOverallGain,
		Class:        ClassMultiplicative,
		Apply: func(in *Inputs) {
			in.Gains[domain.BarOverall] = int(float64(in.Gains[domain.BarOverall]) * (1 + 0.01*float64(in.Level)))
		},
	})

	for _, track := range []string{domain.BarNoMod, domain.BarHidden, domain.BarHardRock, domain.BarDoubleTime, domain.BarHalfTime} {
		r.Register(trackMultiplierDefinition(track))
	}

	r.Register(&Definition{
		ID:           IDInfiniteOverallMultiplier,
		Name:         "Infinite Overall EXP Gain Multiplier",
		Description:  "+0.02% Overall EXP gain / Overall level, per upgrade level (additive)",
		MaxLevel:     10000,
		CostCurrency: domain.CurrencyTaikoTokens,
		Cost:         func(level int) int { return int(300 * math.Pow(float64(level), 1.1)) },
		Category:     CategoryOverallGain,
		Class:        ClassMultiplicative,
		Apply: func(in *Inputs) {
			overallLevel := in.Bars[domain.BarOverall].Level
			in.Gains[domain.BarOverall] = int(float64(in.Gains[domain.BarOverall]) * (1 + 0.0002*float64(in.Level)*float64(overallLevel)))
		},
	})

	r.Register(&Definition{
		ID:           IDTokenGainEfficiency,
		Name:         "Taiko Token Gain Efficiency",
		Description:  fmt.Sprintf("-1 note hit needed to gain a Taiko Token. You gain a token every %d hits by default", domain.NoteHitsPerToken),
		MaxLevel:     20,
		CostCurrency: domain.CurrencyTaikoTokens,
		Cost:         func(level int) int { return int(10 * math.Pow(1.39, float64(level-1))) },
		Category:     CategoryCurrencyGain,
		Class:        ClassAdditive,
		Apply: func(in *Inputs) {
			in.Currency[domain.CurrencyTaikoTokens] = in.Facts.NoteHits / (domain.NoteHitsPerToken - in.Level)
		},
	})

	r.Register(&Definition{
		ID:           IDTokenGainMultiplier,
		Name:         "Taiko Token Gain Multiplier",
		Description:  "+2% Taiko Token gain per level (additive)",
		MaxLevel:     50,
		CostCurrency: domain.CurrencyTaikoTokens,
		Cost:         func(level int) int { return int(25 * math.Pow(1.1, float64(level-1))) },
		Category:     CategoryCurrencyGain,
		Class:        ClassMultiplicative,
		Apply: func(in *Inputs) {
			in.Currency[domain.CurrencyTaikoTokens] = int(float64(in.Currency[domain.CurrencyTaikoTokens]) * (1 + 0.02*float64(in.Level)))
		},
	})

	return r
}

// trackMultiplierDefinition builds the per-track gain multiplier for one exp
// bar. The multiplier scales with the bar's current level, so application
// order across scores matters.
func trackMultiplierDefinition(track string) *Definition {
	return &Definition{
		ID:           fmt.Sprintf("%s_exp_gain_multiplier", lowerTrack(track)),
		Name:         fmt.Sprintf("%s EXP Gain Multiplier", track),
		Description:  fmt.Sprintf("+0.2%% %s EXP gain / %s level, per upgrade level (additive)", track, track),
		MaxLevel:     5,
		CostCurrency: domain.CurrencyTaikoTokens,
		Cost:         func(level int) int { return 200 * level * level },
		Category:     CategoryTrackGain,
		Track:        track,
		Class:        ClassMultiplicative,
		Apply: func(in *Inputs) {
			barLevel := in.Bars[track].Level
			in.Gains[track] = int(float64(in.Gains[track]) * (1 + 0.002*float64(in.Level)*float64(barLevel)))
		},
	}
}

func lowerTrack(track string) string {
	switch track {
	case domain.BarNoMod:
		return "nm"
	case domain.BarHidden:
		return "hd"
	case domain.BarHardRock:
		return "hr"
	case domain.BarDoubleTime:
		return "dt"
	case domain.BarHalfTime:
		return "ht"
	default:
		panic(fmt.Sprintf("upgrade: no multiplier id for track %q", track))
	}
}
