package domain

type Species struct {
	ID                   int              `json:"id"`
	Name                 string           `json:"name"`
	Order                int              `json:"order"`
	GenderRate           int              `json:"gender_rate"`
	CaptureRate          int              `json:"capture_rate"`
	BaseHappiness        int              `json:"base_happiness"`
	IsBaby               bool             `json:"is_baby"`
	IsLegendary          bool             `json:"is_legendary"`
	IsMythical           bool             `json:"is_mythical"`
	HatchCounter         int              `json:"hatch_counter"`
	HasGenderDifferences bool             `json:"has_gender_differences"`
	FormsSwitchable      bool             `json:"forms_switchable"`
	GrowthRate           NamedResource    `json:"growth_rate"`
	EggGroups            []NamedResource  `json:"egg_groups"`
	Color                NamedResource    `json:"color"`
	Shape                *NamedResource   `json:"shape"`
	EvolvesFromSpecies   *NamedResource   `json:"evolves_from_species"`
	EvolutionChain       *ChainReference  `json:"evolution_chain"`
	Habitat              *NamedResource   `json:"habitat"`
	Generation           NamedResource    `json:"generation"`
	Names                []LocalizedName  `json:"names"`
	FlavorTextEntries    []FlavorTextItem `json:"flavor_text_entries"`
}

type LocalizedName struct {
	Name     string        `json:"name"`
	Language NamedResource `json:"language"`
}

type FlavorTextItem struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

// FlavorText returns the first flavor text entry written in the given language.
func (s *Species) FlavorText(language string) string {
	for _, entry := range s.FlavorTextEntries {
		if entry.Language.Name == language {
			return entry.FlavorText
		}
	}
	return ""
}

// LocalizedName returns the species name in the given language, or the API name.
func (s *Species) LocalizedName(language string) string {
	for _, n := range s.Names {
		if n.Language.Name == language {
			return n.Name
		}
	}
	return s.Name
}
