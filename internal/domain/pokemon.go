package domain

type Pokemon struct {
	ID             int              `json:"id"`
	Name           string           `json:"name"`
	Height         int              `json:"height"`
	Weight         int              `json:"weight"`
	BaseExperience int              `json:"base_experience"`
	Sprites        Sprites          `json:"sprites"`
	Types          []PokemonType    `json:"types"`
	Abilities      []PokemonAbility `json:"abilities"`
	Stats          []PokemonStat    `json:"stats"`
	Species        NamedResource    `json:"species"`
}

type Sprites struct {
	FrontDefault string       `json:"front_default"`
	Other        OtherSprites `json:"other"`
}

type OtherSprites struct {
	OfficialArtwork struct {
		FrontDefault string `json:"front_default"`
	} `json:"official-artwork"`
}

type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokemonAbility struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// BaseStats returns base stat values keyed by PokeAPI stat name ("hp", "special-attack", ...).
func (p *Pokemon) BaseStats() map[string]int {
	stats := make(map[string]int, len(p.Stats))
	for _, s := range p.Stats {
		stats[s.Stat.Name] = s.BaseStat
	}
	return stats
}

// Artwork prefers the artwork reported by the API and falls back to the CDN template.
func (p *Pokemon) Artwork() string {
	if p.Sprites.Other.OfficialArtwork.FrontDefault != "" {
		return p.Sprites.Other.OfficialArtwork.FrontDefault
	}
	return ArtworkURL(p.ID)
}
