package evolution

import (
	"testing"

	"pokedex/explorer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trigger(name string) domain.NamedResource {
	return domain.NamedResource{Name: name}
}

func TestClassifyRules(t *testing.T) {
	tests := []struct {
		name      string
		detail    domain.EvolutionDetail
		method    string
		condition string
		item      string
		level     *int
	}{
		{
			name:   "level",
			detail: domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), MinLevel: intPtr(16)},
			method: "Level 16",
			level:  intPtr(16),
		},
		{
			name:   "stone",
			detail: domain.EvolutionDetail{Trigger: trigger(domain.TriggerUseItem), Item: ref("thunder-stone")},
			method: "Stone thunder-stone",
			item:   "thunder-stone",
		},
		{
			name:   "trade",
			detail: domain.EvolutionDetail{Trigger: trigger(domain.TriggerTrade)},
			method: "Trade",
		},
		{
			name:   "happiness",
			detail: domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), MinHappiness: intPtr(220)},
			method: "Happiness 220",
		},
		{
			name:   "move type",
			detail: domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), KnownMoveType: ref("fairy")},
			method: "Move fairy",
		},
		{
			name:      "time of day",
			detail:    domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), TimeOfDay: "dusk"},
			method:    "Time dusk",
			condition: "Time: dusk",
		},
		{
			name:   "affection",
			detail: domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), MinAffection: intPtr(2)},
			method: "Affection 2",
		},
		{
			name:   "beauty",
			detail: domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), MinBeauty: intPtr(171)},
			method: "Beauty 171",
		},
		{
			name:   "physical stats with zero relation",
			detail: domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), RelativePhysicalStats: intPtr(0)},
			method: "Physical stats",
		},
		{
			name:      "known move",
			detail:    domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), KnownMove: ref("ancient-power")},
			method:    "Move ancient-power",
			condition: "Move: ancient-power",
		},
		{
			name:      "location",
			detail:    domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), Location: ref("mt-coronet")},
			method:    "Location mt-coronet",
			condition: "Location: mt-coronet",
		},
		{
			name:      "held item",
			detail:    domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), HeldItem: ref("oval-stone")},
			method:    "Item oval-stone",
			condition: "Item: oval-stone",
		},
		{
			name:      "gender female",
			detail:    domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), Gender: intPtr(domain.GenderFemale)},
			method:    "Gender Female",
			condition: "Gender: Female",
		},
		{
			name:      "gender male",
			detail:    domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), Gender: intPtr(domain.GenderMale)},
			method:    "Gender Male",
			condition: "Gender: Male",
		},
		{
			name:      "overworld rain",
			detail:    domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), NeedsOverworldRain: true},
			method:    "Overworld rain",
			condition: "Overworld rain",
		},
		{
			name:      "upside down",
			detail:    domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), TurnUpsideDown: true},
			method:    "Upside down",
			condition: "Upside down",
		},
		{
			name:      "trade species",
			detail:    domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), TradeSpecies: ref("shelmet")},
			method:    "Trade with shelmet",
			condition: "Trade with shelmet",
		},
		{
			name:      "party species",
			detail:    domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), PartySpecies: ref("remoraid")},
			method:    "With remoraid in party",
			condition: "With remoraid in party",
		},
		{
			name:      "party type",
			detail:    domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp), PartyType: ref("dark")},
			method:    "With dark in party",
			condition: "With dark in party",
		},
		{
			name:   "trigger name fallback",
			detail: domain.EvolutionDetail{Trigger: trigger(domain.TriggerShed)},
			method: "shed",
		},
		{
			name:   "unrecognised trigger verbatim",
			detail: domain.EvolutionDetail{Trigger: trigger("three-critical-hits")},
			method: "three-critical-hits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(&tt.detail)

			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.condition, got.Condition)
			assert.Equal(t, tt.item, got.Item)
			if tt.level == nil {
				assert.Nil(t, got.Level)
			} else {
				require.NotNil(t, got.Level)
				assert.Equal(t, *tt.level, *got.Level)
			}
		})
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	d := domain.EvolutionDetail{
		Trigger:      trigger(domain.TriggerTrade),
		Item:         ref("metal-coat"),
		MinHappiness: intPtr(200),
	}
	assert.Equal(t, "Stone metal-coat", Classify(&d).Method)

	d.Item = nil
	assert.Equal(t, "Trade", Classify(&d).Method)
}

func TestClassifyWinningConditionIsKept(t *testing.T) {
	d := domain.EvolutionDetail{
		Trigger:   trigger(domain.TriggerLevelUp),
		TimeOfDay: "night",
		HeldItem:  ref("razor-fang"),
	}

	got := Classify(&d)

	assert.Equal(t, "Time night", got.Method)
	assert.Equal(t, "Time: night", got.Condition)
}

func TestClassifyConditionFromLastMatchingQualifier(t *testing.T) {
	d := domain.EvolutionDetail{
		Trigger:      trigger(domain.TriggerLevelUp),
		MinHappiness: intPtr(160),
		TimeOfDay:    "day",
		Location:     ref("route-217"),
	}

	got := Classify(&d)

	assert.Equal(t, "Happiness 160", got.Method)
	assert.Equal(t, "Location: route-217", got.Condition)
}

func TestTriggerRulesAreIndependent(t *testing.T) {
	seen := make(map[string]bool, len(triggerRules))
	for _, rule := range triggerRules {
		assert.False(t, seen[rule.name], "duplicate rule %s", rule.name)
		seen[rule.name] = true
		assert.False(t, rule.matches(&domain.EvolutionDetail{Trigger: trigger(domain.TriggerLevelUp)}),
			"rule %s matches an empty level-up detail", rule.name)
	}
	assert.Len(t, triggerRules, 18)
}

func TestRegionalForm(t *testing.T) {
	region, ok := RegionalForm("sandshrew-alola")
	assert.True(t, ok)
	assert.Equal(t, "Alola", region)

	_, ok = RegionalForm("sandshrew")
	assert.False(t, ok)
}

func TestClassifyConditionPrefersMoveOverLocation(t *testing.T) {
	d := domain.EvolutionDetail{
		Trigger:   trigger(domain.TriggerLevelUp),
		MinLevel:  intPtr(33),
		KnownMove: ref("ancient-power"),
		Location:  ref("mt-coronet"),
	}

	got := Classify(&d)

	assert.Equal(t, "Level 33", got.Method)
	assert.Equal(t, "Move: ancient-power", got.Condition)
}

func TestConditionOrderNamesExistingRules(t *testing.T) {
	for _, name := range conditionOrder {
		_, ok := rulesByName[name]
		assert.True(t, ok, name)
	}
}
