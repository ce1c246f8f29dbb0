package upgrade

import (
	"fmt"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
)

// Class is the priority bucket controlling effect composition order. All
// effects of a lower class apply before any effect of the next class.
type Class int

const (
	ClassDirectModification Class = iota
	ClassAdditive
	ClassMultiplicative
	ClassExponential
)

// Classes lists every class in application order.
var Classes = []Class{ClassDirectModification, ClassAdditive, ClassMultiplicative, ClassExponential}

// String returns the class name for logging.
func (c Class) String() string {
	switch c {
	case ClassDirectModification:
		return "direct_modification"
	case ClassAdditive:
		return "additive"
	case ClassMultiplicative:
		return "multiplicative"
	case ClassExponential:
		return "exponential"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Category declares which gain mapping an upgrade touches.
type Category int

const (
	// CategoryOverallGain effects mutate only the Overall entry of the exp
	// gain map, before the per-track split.
	CategoryOverallGain Category = iota
	// CategoryTrackGain effects mutate only their Definition's Track entry,
	// after the split.
	CategoryTrackGain
	// CategoryCurrencyGain effects mutate only the currency gain map.
	CategoryCurrencyGain
)

// Inputs carries everything an effect may need. Effects read the fields they
// declare an interest in and ignore the rest; this replaces dynamic dispatch
// on effect parameter names with one closed struct.
//
// An effect must only mutate the single entry its Definition targets. Bars is
// a read-only snapshot of the user's exp bars as of the current submission.
type Inputs struct {
	Level    int
	Facts    domain.ScoreFacts
	Gains    map[string]int
	Bars     domain.ExpBars
	Currency map[string]int
}

// Effect applies one upgrade at a given level to the working gains.
type Effect func(in *Inputs)

// Definition is a static, immutable description of one purchasable upgrade.
// Definitions are created once at startup and shared across all submissions.
type Definition struct {
	ID           string
	Name         string
	Description  string
	MaxLevel     int
	CostCurrency string
	// Cost returns the price of buying the given level (1-based, strictly
	// increasing in level).
	Cost     func(level int) int
	Category Category
	// Track names the exp bar a CategoryTrackGain effect targets. Empty for
	// other categories.
	Track string
	Class Class
	Apply Effect
}

// Registry is the static upgrade catalog. Insertion order is the tie-break
// within a priority class, so registration order is part of the economy
// contract. Read-only after startup; safe for concurrent readers.
type Registry struct {
	defs []*Definition
	byID map[string]*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Definition)}
}

// Register adds a definition. Duplicate IDs are a programming error.
func (r *Registry) Register(def *Definition) {
	if _, exists := r.byID[def.ID]; exists {
		panic(fmt.Sprintf("upgrade: duplicate definition %q", def.ID))
	}
	r.defs = append(r.defs, def)
	r.byID[def.ID] = def
}

// Get returns the definition for the given ID, or nil if unknown.
func (r *Registry) Get(id string) *Definition {
	return r.byID[id]
}

// All returns the definitions in insertion order. Callers must not modify
// the returned slice.
func (r *Registry) All() []*Definition {
	return r.defs
}

// IDs returns all upgrade IDs in insertion order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.defs))
	for i, def := range r.defs {
		ids[i] = def.ID
	}
	return ids
}

// Validate checks every definition for internal consistency: track targets
// must name a real exp bar, cost curves must be strictly increasing up to max
// level, and currency units must exist. Called once at startup; any error is
// fatal.
func (r *Registry) Validate() error {
	for _, def := range r.defs {
		if def.Apply == nil {
			return fmt.Errorf("upgrade %q has no effect", def.ID)
		}
		if def.MaxLevel < 1 {
			return fmt.Errorf("upgrade %q has invalid max level %d", def.ID, def.MaxLevel)
		}
		if def.Category == CategoryTrackGain {
			if !validTrack(def.Track) {
				return fmt.Errorf("upgrade %q targets unknown exp bar %q", def.ID, def.Track)
			}
		} else if def.Track != "" {
			return fmt.Errorf("upgrade %q declares track %q but is not a track-gain upgrade", def.ID, def.Track)
		}
		if !validCurrency(def.CostCurrency) {
			return fmt.Errorf("upgrade %q costs unknown currency %q", def.ID, def.CostCurrency)
		}
		if err := validateCostCurve(def); err != nil {
			return err
		}
	}
	return nil
}

// SyncCheck verifies the registry's ID set matches the persisted schema's
// upgrade ID set. A mismatch means the catalog and the database disagree and
// the process must refuse to start.
func (r *Registry) SyncCheck(persistedIDs []string) error {
	persisted := make(map[string]bool, len(persistedIDs))
	for _, id := range persistedIDs {
		persisted[id] = true
	}

	for _, def := range r.defs {
		if !persisted[def.ID] {
			return fmt.Errorf("upgrade %q is registered but missing from the database schema", def.ID)
		}
	}
	if len(persisted) != len(r.defs) {
		for id := range persisted {
			if r.byID[id] == nil {
				return fmt.Errorf("upgrade %q exists in the database schema but is not registered", id)
			}
		}
	}
	return nil
}

func validTrack(name string) bool {
	for _, bar := range domain.ExpBarNames {
		if bar == name {
			return true
		}
	}
	return false
}

func validCurrency(id string) bool {
	for _, c := range domain.CurrencyIDs {
		if c == id {
			return true
		}
	}
	return false
}

// validateCostCurve walks the cost curve up to max level (capped so the
// "infinite" upgrades stay cheap to check) and rejects non-increasing curves.
func validateCostCurve(def *Definition) error {
	const maxLevelsToCheck = 200

	levels := def.MaxLevel
	if levels > maxLevelsToCheck {
		levels = maxLevelsToCheck
	}

	prev := 0
	for level := 1; level <= levels; level++ {
		cost := def.Cost(level)
		if cost <= 0 {
			return fmt.Errorf("upgrade %q has non-positive cost %d at level %d", def.ID, cost, level)
		}
		if cost <= prev && level > 1 {
			return fmt.Errorf("upgrade %q cost curve is not strictly increasing at level %d", def.ID, level)
		}
		prev = cost
	}
	return nil
}
