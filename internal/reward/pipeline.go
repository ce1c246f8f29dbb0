package reward

import (
	"fmt"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
	"github.com/jarvisgaming/TaikoBot_Go/internal/upgrade"
)

// Pipeline applies the upgrade catalog to a score's base gains. It is pure:
// it never mutates the caller's exp bar snapshot, and the same inputs always
// produce the same outputs. Safe for concurrent use.
type Pipeline struct {
	registry *upgrade.Registry
}

// NewPipeline creates a pipeline over the given registry.
func NewPipeline(registry *upgrade.Registry) *Pipeline {
	return &Pipeline{registry: registry}
}

// Result holds the final per-track exp gains and currency gains of one score.
type Result struct {
	TrackGains    map[string]int
	CurrencyGains map[string]int
}

// Evaluate runs the staged reduction over the priority-ordered upgrade
// effects:
//
//  1. seed the working gains with the base Overall exp
//  2. apply overall-gain upgrades, class by class
//  3. re-split Overall across the active tracks (buffs change the total, so
//     the original shares cannot be reused)
//  4. apply per-track upgrades, class by class
//  5. recompute Overall as the sum of the track entries (per-track buffs
//     must be reflected back)
//  6. compute currency gains through the same class ordering
//
// levels must contain an entry for every registered upgrade and bars an entry
// for every exp bar; a missing key is a programming error and panics.
func (p *Pipeline) Evaluate(facts domain.ScoreFacts, levels map[string]int, bars domain.ExpBars) Result {
	p.checkInputs(levels, bars)

	gains := newTrackGains()
	gains[domain.BarOverall] = facts.BaseOverallExp

	p.applyClassOrdered(facts, levels, bars, gains, nil, func(def *upgrade.Definition) bool {
		return def.Category == upgrade.CategoryOverallGain
	})

	splitOverallAcrossTracks(facts, gains)

	p.applyClassOrdered(facts, levels, bars, gains, nil, func(def *upgrade.Definition) bool {
		return def.Category == upgrade.CategoryTrackGain
	})

	recomputeOverallFromTracks(gains)

	currency := domain.NewBalances()
	currency[domain.CurrencyTaikoTokens] = facts.BaseTokens

	p.applyClassOrdered(facts, levels, bars, nil, currency, func(def *upgrade.Definition) bool {
		return def.Category == upgrade.CategoryCurrencyGain
	})

	return Result{TrackGains: gains, CurrencyGains: currency}
}

// applyClassOrdered walks the priority classes in order and, within each
// class, the registry in insertion order, applying every matching upgrade.
// Effects run even at level 0; the catalog's formulas are identities there,
// which keeps truncation behavior uniform across owned and unowned upgrades.
func (p *Pipeline) applyClassOrdered(facts domain.ScoreFacts, levels map[string]int, bars domain.ExpBars, gains map[string]int, currency map[string]int, match func(*upgrade.Definition) bool) {
	for _, class := range upgrade.Classes {
		for _, def := range p.registry.All() {
			if def.Class != class || !match(def) {
				continue
			}
			def.Apply(&upgrade.Inputs{
				Level:    levels[def.ID],
				Facts:    facts,
				Gains:    gains,
				Bars:     bars,
				Currency: currency,
			})
		}
	}
}

// splitOverallAcrossTracks distributes the Overall gain over the score's
// active tracks by floor division. With no tracked mods everything routes to
// NM. Overall itself keeps the pre-split total; it is reconciled after the
// per-track stage.
func splitOverallAcrossTracks(facts domain.ScoreFacts, gains map[string]int) {
	for _, name := range domain.ExpBarNames {
		if name != domain.BarOverall {
			gains[name] = 0
		}
	}

	active := facts.ActiveTracks
	if len(active) == 0 {
		gains[domain.BarNoMod] = gains[domain.BarOverall]
		return
	}

	share := gains[domain.BarOverall] / len(active)
	for _, track := range active {
		gains[track] = share
	}
}

// recomputeOverallFromTracks re-derives Overall as the sum of the other
// entries. Deliberately a re-derivation, not a copy: per-track buffs and
// floor-division loss both have to land in Overall.
func recomputeOverallFromTracks(gains map[string]int) {
	total := 0
	for name, gain := range gains {
		if name == domain.BarOverall {
			continue
		}
		total += gain
	}
	gains[domain.BarOverall] = total
}

func (p *Pipeline) checkInputs(levels map[string]int, bars domain.ExpBars) {
	for _, def := range p.registry.All() {
		lvl, ok := levels[def.ID]
		if !ok {
			panic(fmt.Sprintf("reward: missing upgrade level for %q", def.ID))
		}
		if lvl < 0 || lvl > def.MaxLevel {
			panic(fmt.Sprintf("reward: upgrade %q level %d out of range", def.ID, lvl))
		}
	}
	for _, name := range domain.ExpBarNames {
		if _, ok := bars[name]; !ok {
			panic(fmt.Sprintf("reward: missing exp bar %q", name))
		}
	}
}

func newTrackGains() map[string]int {
	gains := make(map[string]int, len(domain.ExpBarNames))
	for _, name := range domain.ExpBarNames {
		gains[name] = 0
	}
	return gains
}
