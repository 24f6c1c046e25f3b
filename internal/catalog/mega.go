package catalog

import (
	"math"

	"pokedex/explorer/internal/domain"
)

var megaEvolutions = []domain.MegaEvolution{
	{
		ID: 10033, Name: "Mega Venusaur", BasePokemonID: 3, BasePokemonName: "venusaur",
		MegaStone: "Venusaurite", Type: domain.MegaTypeMega,
		Description: "The flower on its back grew huge and releases a soothing scent.",
		Stats:       domain.MegaStats{HP: 80, Attack: 100, Defense: 123, SpAttack: 122, SpDefense: 120, Speed: 80},
		Abilities:   []string{"Thick Fat"}, Height: 2.4, Weight: 155.5,
	},
	{
		ID: 10034, Name: "Mega Charizard X", BasePokemonID: 6, BasePokemonName: "charizard",
		MegaStone: "Charizardite X", Type: domain.MegaTypeX,
		Description: "Its flames turn blue and hotter, and it gains the Dragon type.",
		Stats:       domain.MegaStats{HP: 78, Attack: 130, Defense: 111, SpAttack: 130, SpDefense: 85, Speed: 100},
		Abilities:   []string{"Tough Claws"}, Height: 1.7, Weight: 110.5,
	},
	{
		ID: 10035, Name: "Mega Charizard Y", BasePokemonID: 6, BasePokemonName: "charizard",
		MegaStone: "Charizardite Y", Type: domain.MegaTypeY,
		Description: "Its wings grow larger and its flames burn even stronger.",
		Stats:       domain.MegaStats{HP: 78, Attack: 104, Defense: 78, SpAttack: 159, SpDefense: 115, Speed: 100},
		Abilities:   []string{"Drought"}, Height: 1.7, Weight: 100.5,
	},
	{
		ID: 10036, Name: "Mega Blastoise", BasePokemonID: 9, BasePokemonName: "blastoise",
		MegaStone: "Blastoisinite", Type: domain.MegaTypeMega,
		Description: "The cannons on its back merge into a single giant cannon.",
		Stats:       domain.MegaStats{HP: 79, Attack: 103, Defense: 120, SpAttack: 135, SpDefense: 115, Speed: 78},
		Abilities:   []string{"Mega Launcher"}, Height: 1.6, Weight: 101.1,
	},
	{
		ID: 10038, Name: "Mega Gengar", BasePokemonID: 94, BasePokemonName: "gengar",
		MegaStone: "Gengarite", Type: domain.MegaTypeMega,
		Description: "Its body becomes more solid and it draws power from shadows.",
		Stats:       domain.MegaStats{HP: 60, Attack: 65, Defense: 80, SpAttack: 170, SpDefense: 95, Speed: 130},
		Abilities:   []string{"Shadow Tag"}, Height: 1.4, Weight: 40.5,
	},
	{
		ID: 10043, Name: "Mega Mewtwo X", BasePokemonID: 150, BasePokemonName: "mewtwo",
		MegaStone: "Mewtwonite X", Type: domain.MegaTypeX,
		Description: "It gains massive physical strength and the Fighting type.",
		Stats:       domain.MegaStats{HP: 106, Attack: 190, Defense: 100, SpAttack: 154, SpDefense: 100, Speed: 130},
		Abilities:   []string{"Steadfast"}, Height: 2.3, Weight: 127.0,
	},
	{
		ID: 10044, Name: "Mega Mewtwo Y", BasePokemonID: 150, BasePokemonName: "mewtwo",
		MegaStone: "Mewtwonite Y", Type: domain.MegaTypeY,
		Description: "A slimmer form focused on psychic power.",
		Stats:       domain.MegaStats{HP: 106, Attack: 150, Defense: 70, SpAttack: 194, SpDefense: 120, Speed: 140},
		Abilities:   []string{"Insomnia"}, Height: 1.5, Weight: 33.0,
	},
	{
		ID: 10058, Name: "Mega Garchomp", BasePokemonID: 445, BasePokemonName: "garchomp",
		MegaStone: "Garchompite", Type: domain.MegaTypeMega,
		Description: "Its fins turn into sharp blades.",
		Stats:       domain.MegaStats{HP: 108, Attack: 170, Defense: 115, SpAttack: 120, SpDefense: 95, Speed: 92},
		Abilities:   []string{"Sand Force"}, Height: 1.9, Weight: 95.0,
	},
	{
		ID: 10059, Name: "Mega Lucario", BasePokemonID: 448, BasePokemonName: "lucario",
		MegaStone: "Lucarionite", Type: domain.MegaTypeMega,
		Description: "Its aura intensifies and forms spikes of energy.",
		Stats:       domain.MegaStats{HP: 70, Attack: 145, Defense: 88, SpAttack: 140, SpDefense: 70, Speed: 112},
		Abilities:   []string{"Adaptability"}, Height: 1.3, Weight: 57.5,
	},
}

func init() {
	for i := range megaEvolutions {
		megaEvolutions[i].Image = domain.ArtworkURL(megaEvolutions[i].ID)
	}
}

// MegaEvolutionsFor returns the mega forms of a base species, in table order.
func MegaEvolutionsFor(basePokemonID int) []domain.MegaEvolution {
	var out []domain.MegaEvolution
	for _, m := range megaEvolutions {
		if m.BasePokemonID == basePokemonID {
			out = append(out, m)
		}
	}
	return out
}

func HasMegaEvolution(basePokemonID int) bool {
	for _, m := range megaEvolutions {
		if m.BasePokemonID == basePokemonID {
			return true
		}
	}
	return false
}

func MegaEvolutionByID(id int) (domain.MegaEvolution, bool) {
	for _, m := range megaEvolutions {
		if m.ID == id {
			return m, true
		}
	}
	return domain.MegaEvolution{}, false
}

// MegaStones lists distinct mega stones in table order.
func MegaStones() []string {
	seen := make(map[string]bool, len(megaEvolutions))
	stones := make([]string, 0, len(megaEvolutions))
	for _, m := range megaEvolutions {
		if seen[m.MegaStone] {
			continue
		}
		seen[m.MegaStone] = true
		stones = append(stones, m.MegaStone)
	}
	return stones
}

// BestMegaEvolution returns the form with the highest stat total. Ties keep
// the earlier form.
func BestMegaEvolution(megas []domain.MegaEvolution) (domain.MegaEvolution, bool) {
	if len(megas) == 0 {
		return domain.MegaEvolution{}, false
	}

	best := megas[0]
	for _, m := range megas[1:] {
		if m.Stats.Total() > best.Stats.Total() {
			best = m
		}
	}
	return best, true
}

type StatComparison struct {
	Stat       string `json:"stat"`
	Normal     int    `json:"normal"`
	Mega       int    `json:"mega"`
	Difference int    `json:"difference"`
	Percentage int    `json:"percentage"`
}

var statOrder = []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}

// CompareStats lines up a pokemon's base stats against one of its mega forms.
// Percentage is rounded and is 0 when the base stat is unknown.
func CompareStats(pokemon *domain.Pokemon, mega domain.MegaEvolution) []StatComparison {
	normal := pokemon.BaseStats()
	megaStats := mega.Stats.ByAPIName()

	out := make([]StatComparison, 0, len(statOrder))
	for _, stat := range statOrder {
		n, m := normal[stat], megaStats[stat]
		diff := m - n

		pct := 0
		if n > 0 {
			pct = int(math.Round(float64(diff) / float64(n) * 100))
		}

		out = append(out, StatComparison{Stat: stat, Normal: n, Mega: m, Difference: diff, Percentage: pct})
	}
	return out
}
