package domain

import "fmt"

const (
	artworkURLTemplate         = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%d.png"
	fallbackArtworkURLTemplate = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png"
)

// ArtworkURL returns the official artwork URL for a species or form id.
func ArtworkURL(id int) string {
	return fmt.Sprintf(artworkURLTemplate, id)
}

// FallbackArtworkURL returns the plain sprite used when the artwork fails to load.
func FallbackArtworkURL(id int) string {
	return fmt.Sprintf(fallbackArtworkURLTemplate, id)
}
