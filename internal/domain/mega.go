package domain

type MegaType string

func (m MegaType) String() string {
	return string(m)
}

const (
	MegaTypeX    MegaType = "mega-x"
	MegaTypeY    MegaType = "mega-y"
	MegaTypeMega MegaType = "mega"
)

type MegaStats struct {
	HP        int `json:"hp"`
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	SpAttack  int `json:"sp_attack"`
	SpDefense int `json:"sp_defense"`
	Speed     int `json:"speed"`
}

// Total is the sum of all six stats.
func (s MegaStats) Total() int {
	return s.HP + s.Attack + s.Defense + s.SpAttack + s.SpDefense + s.Speed
}

// ByAPIName returns stats keyed by PokeAPI stat names.
func (s MegaStats) ByAPIName() map[string]int {
	return map[string]int{
		"hp":              s.HP,
		"attack":          s.Attack,
		"defense":         s.Defense,
		"special-attack":  s.SpAttack,
		"special-defense": s.SpDefense,
		"speed":           s.Speed,
	}
}

type MegaEvolution struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	BasePokemonID   int       `json:"base_pokemon_id"`
	BasePokemonName string    `json:"base_pokemon_name"`
	MegaStone       string    `json:"mega_stone"`
	Type            MegaType  `json:"type"`
	Image           string    `json:"image"`
	Description     string    `json:"description"`
	Stats           MegaStats `json:"stats"`
	Abilities       []string  `json:"abilities"`
	Height          float64   `json:"height"`
	Weight          float64   `json:"weight"`
}
