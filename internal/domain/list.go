package domain

// PokemonListPage mirrors the paginated /pokemon response.
type PokemonListPage struct {
	Count    int             `json:"count"`
	Next     string          `json:"next"`
	Previous string          `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// HasMore reports whether another page follows this one.
func (p *PokemonListPage) HasMore() bool {
	return p.Next != ""
}
