package catalog

import (
	"errors"
	"fmt"

	"pokedex/explorer/internal/domain"
)

// ErrUnknownRegion is returned for region keys missing from the table.
var ErrUnknownRegion = errors.New("unknown region")

// RegionAll selects the unfiltered, paginated list instead of a region.
const RegionAll = "all"

var regions = []domain.Region{
	{Key: "kanto", Name: "Kanto", Generation: 1, StartID: 1, EndID: 151, Description: "The original region where it all began", Color: "#ff6b6b"},
	{Key: "johto", Name: "Johto", Generation: 2, StartID: 152, EndID: 251, Description: "Land of old traditions and legends", Color: "#4ecdc4"},
	{Key: "hoenn", Name: "Hoenn", Generation: 3, StartID: 252, EndID: 386, Description: "Land and sea in balance", Color: "#45b7d1"},
	{Key: "sinnoh", Name: "Sinnoh", Generation: 4, StartID: 387, EndID: 493, Description: "Land of myths and legends", Color: "#96ceb4"},
	{Key: "unova", Name: "Unova", Generation: 5, StartID: 494, EndID: 649, Description: "A region of urban contrasts", Color: "#feca57"},
	{Key: "kalos", Name: "Kalos", Generation: 6, StartID: 650, EndID: 721, Description: "Land of beauty and elegance", Color: "#ff9ff3"},
	{Key: "alola", Name: "Alola", Generation: 7, StartID: 722, EndID: 809, Description: "Tropical islands with regional forms", Color: "#54a0ff"},
	{Key: "galar", Name: "Galar", Generation: 8, StartID: 810, EndID: 898, Description: "Tradition meets innovation", Color: "#5f27cd"},
	{Key: "paldea", Name: "Paldea", Generation: 9, StartID: 899, EndID: 1010, Description: "Land of open adventure", Color: "#00d2d3"},
}

var regionsByKey = func() map[string]domain.Region {
	m := make(map[string]domain.Region, len(regions))
	for _, r := range regions {
		m[r.Key] = r
	}
	return m
}()

// Regions returns every region in generation order.
func Regions() []domain.Region {
	out := make([]domain.Region, len(regions))
	copy(out, regions)
	return out
}

func RegionByKey(key string) (domain.Region, error) {
	region, ok := regionsByKey[key]
	if !ok {
		return domain.Region{}, fmt.Errorf("%w: %q", ErrUnknownRegion, key)
	}
	return region, nil
}

// PokemonIDsByRegion lists the national dex ids introduced by a region.
func PokemonIDsByRegion(key string) ([]int, error) {
	region, err := RegionByKey(key)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, region.Size())
	for id := region.StartID; id <= region.EndID; id++ {
		ids = append(ids, id)
	}
	return ids, nil
}

// RegionOf returns the region that introduced the given national dex id.
func RegionOf(id int) (domain.Region, bool) {
	for _, r := range regions {
		if r.Contains(id) {
			return r, true
		}
	}
	return domain.Region{}, false
}
