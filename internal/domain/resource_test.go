package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResourceID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    int
		wantErr bool
	}{
		{name: "chain with trailing slash", url: "https://pokeapi.co/api/v2/evolution-chain/67/", want: 67},
		{name: "species without trailing slash", url: "https://pokeapi.co/api/v2/pokemon-species/133", want: 133},
		{name: "surrounding whitespace", url: " https://pokeapi.co/api/v2/pokemon/25/ ", want: 25},
		{name: "non numeric", url: "https://pokeapi.co/api/v2/evolution-chain/abc/", wantErr: true},
		{name: "zero", url: "https://pokeapi.co/api/v2/evolution-chain/0/", wantErr: true},
		{name: "empty", url: "", wantErr: true},
		{name: "only slashes", url: "///", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResourceID(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArtworkTemplatesShareID(t *testing.T) {
	assert.Equal(t,
		"https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/133.png",
		ArtworkURL(133))
	assert.Equal(t,
		"https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/133.png",
		FallbackArtworkURL(133))
}

func TestPokemonArtworkFallsBackToTemplate(t *testing.T) {
	p := &Pokemon{ID: 6}
	assert.Equal(t, ArtworkURL(6), p.Artwork())

	p.Sprites.Other.OfficialArtwork.FrontDefault = "https://example.test/6.png"
	assert.Equal(t, "https://example.test/6.png", p.Artwork())
}
