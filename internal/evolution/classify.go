package evolution

import (
	"fmt"

	"pokedex/explorer/internal/domain"
)

const (
	baseMethod    = "Base"
	unknownMethod = "Unknown"
)

// Classification is the human-readable reading of one evolution detail.
type Classification struct {
	Method    string
	Level     *int
	Item      string
	Condition string
}

// triggerRule matches one qualifier of an evolution detail. Rules are
// evaluated in order and the first match decides the method.
type triggerRule struct {
	name     string
	matches  func(d *domain.EvolutionDetail) bool
	classify func(d *domain.EvolutionDetail) Classification
}

var triggerRules = []triggerRule{
	{
		name:    "min_level",
		matches: func(d *domain.EvolutionDetail) bool { return d.MinLevel != nil },
		classify: func(d *domain.EvolutionDetail) Classification {
			level := *d.MinLevel
			return Classification{Method: fmt.Sprintf("Level %d", level), Level: &level}
		},
	},
	{
		name:    "item",
		matches: func(d *domain.EvolutionDetail) bool { return d.Item != nil },
		classify: func(d *domain.EvolutionDetail) Classification {
			return Classification{Method: "Stone " + d.Item.Name, Item: d.Item.Name}
		},
	},
	{
		name:    "trade",
		matches: func(d *domain.EvolutionDetail) bool { return d.Trigger.Name == domain.TriggerTrade },
		classify: func(d *domain.EvolutionDetail) Classification {
			return Classification{Method: "Trade"}
		},
	},
	{
		name:    "min_happiness",
		matches: func(d *domain.EvolutionDetail) bool { return d.MinHappiness != nil },
		classify: func(d *domain.EvolutionDetail) Classification {
			return Classification{Method: fmt.Sprintf("Happiness %d", *d.MinHappiness)}
		},
	},
	{
		name:    "known_move_type",
		matches: func(d *domain.EvolutionDetail) bool { return d.KnownMoveType != nil },
		classify: func(d *domain.EvolutionDetail) Classification {
			return Classification{Method: "Move " + d.KnownMoveType.Name}
		},
	},
	{
		name:    "time_of_day",
		matches: func(d *domain.EvolutionDetail) bool { return d.TimeOfDay != "" },
		classify: func(d *domain.EvolutionDetail) Classification {
			return Classification{Method: "Time " + d.TimeOfDay, Condition: "Time: " + d.TimeOfDay}
		},
	},
	{
		name:    "min_affection",
		matches: func(d *domain.EvolutionDetail) bool { return d.MinAffection != nil },
		classify: func(d *domain.EvolutionDetail) Classification {
			return Classification{Method: fmt.Sprintf("Affection %d", *d.MinAffection)}
		},
	},
	{
		name:    "min_beauty",
		matches: func(d *domain.EvolutionDetail) bool { return d.MinBeauty != nil },
		classify: func(d *domain.EvolutionDetail) Classification {
			return Classification{Method: fmt.Sprintf("Beauty %d", *d.MinBeauty)}
		},
	},
	{
		name:    "relative_physical_stats",
		matches: func(d *domain.EvolutionDetail) bool { return d.RelativePhysicalStats != nil },
		classify: func(d *domain.EvolutionDetail) Classification {
			return Classification{Method: "Physical stats"}
		},
	},
	{
		name:    "known_move",
		matches: func(d *domain.EvolutionDetail) bool { return d.KnownMove != nil },
		classify: func(d *domain.EvolutionDetail) Classification {
			return Classification{Method: "Move " + d.KnownMove.Name, Condition: "Move: " + d.KnownMove.Name}
		},
	},
	{
		name:    "location",
		matches: func(d *domain.EvolutionDetail) bool { return d.Location != nil },
		classify: func(d *domain.EvolutionDetail) Classification {
			return Classification{Method: "Location " + d.Location.Name, Condition: "Location: " + d.Location.Name}
		},
	},
	{
		name:    "held_item",
		matches: func(d *domain.EvolutionDetail) bool { return d.HeldItem != nil },
		classify: func(d *domain.EvolutionDetail) Classification {
			return Classification{Method: "Item " + d.HeldItem.Name, Condition: "Item: " + d.HeldItem.Name}
		},
	},
	{
		name:    "gender",
		matches: func(d *domain.EvolutionDetail) bool { return d.Gender != nil },
		classify: func(d *domain.EvolutionDetail) Classification {
			label := genderLabel(*d.Gender)
			return Classification{Method: "Gender " + label, Condition: "Gender: " + label}
		},
	},
	{
		name:    "needs_overworld_rain",
		matches: func(d *domain.EvolutionDetail) bool { return d.NeedsOverworldRain },
		classify: func(d *domain.EvolutionDetail) Classification {
			return sameCondition("Overworld rain")
		},
	},
	{
		name:    "turn_upside_down",
		matches: func(d *domain.EvolutionDetail) bool { return d.TurnUpsideDown },
		classify: func(d *domain.EvolutionDetail) Classification {
			return sameCondition("Upside down")
		},
	},
	{
		name:    "trade_species",
		matches: func(d *domain.EvolutionDetail) bool { return d.TradeSpecies != nil },
		classify: func(d *domain.EvolutionDetail) Classification {
			return sameCondition("Trade with " + d.TradeSpecies.Name)
		},
	},
	{
		name:    "party_species",
		matches: func(d *domain.EvolutionDetail) bool { return d.PartySpecies != nil },
		classify: func(d *domain.EvolutionDetail) Classification {
			return sameCondition("With " + d.PartySpecies.Name + " in party")
		},
	},
	{
		name:    "party_type",
		matches: func(d *domain.EvolutionDetail) bool { return d.PartyType != nil },
		classify: func(d *domain.EvolutionDetail) Classification {
			return sameCondition("With " + d.PartyType.Name + " in party")
		},
	},
}

func sameCondition(label string) Classification {
	return Classification{Method: label, Condition: label}
}

func genderLabel(code int) string {
	if code == domain.GenderFemale {
		return "Female"
	}
	return "Male"
}

// Classify reads an evolution detail into a method label. The first matching
// rule wins. When that rule carries no secondary condition, one is taken from
// the qualifiers in conditionOrder, so "Level 36" at night still reports
// "Time: night". A detail matching no rule is labelled with its trigger name.
func Classify(d *domain.EvolutionDetail) Classification {
	var result Classification
	matched := false
	for _, rule := range triggerRules {
		if rule.matches(d) {
			result = rule.classify(d)
			matched = true
			break
		}
	}

	if !matched {
		result = Classification{Method: d.Trigger.Name}
	}

	if result.Condition == "" {
		result.Condition = lastCondition(d)
	}

	return result
}

// conditionOrder lists the qualifiers that can supply a secondary condition.
// When several are set the last one listed wins.
var conditionOrder = []string{
	"time_of_day",
	"location",
	"known_move",
	"held_item",
	"gender",
	"needs_overworld_rain",
	"turn_upside_down",
	"trade_species",
	"party_species",
	"party_type",
}

var rulesByName = func() map[string]triggerRule {
	m := make(map[string]triggerRule, len(triggerRules))
	for _, rule := range triggerRules {
		m[rule.name] = rule
	}
	return m
}()

func lastCondition(d *domain.EvolutionDetail) string {
	for i := len(conditionOrder) - 1; i >= 0; i-- {
		rule := rulesByName[conditionOrder[i]]
		if !rule.matches(d) {
			continue
		}
		if c := rule.classify(d).Condition; c != "" {
			return c
		}
	}
	return ""
}
