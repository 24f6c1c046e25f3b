package catalog

import (
	"testing"

	"pokedex/explorer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionsAreContiguous(t *testing.T) {
	all := Regions()
	require.Len(t, all, 9)

	assert.Equal(t, 1, all[0].StartID)
	for i := 1; i < len(all); i++ {
		assert.Equal(t, all[i-1].EndID+1, all[i].StartID, "gap before %s", all[i].Key)
		assert.Equal(t, all[i-1].Generation+1, all[i].Generation)
	}
}

func TestRegionsReturnsCopy(t *testing.T) {
	all := Regions()
	all[0].Name = "changed"

	kanto, err := RegionByKey("kanto")
	require.NoError(t, err)
	assert.Equal(t, "Kanto", kanto.Name)
}

func TestPokemonIDsByRegion(t *testing.T) {
	ids, err := PokemonIDsByRegion("johto")
	require.NoError(t, err)

	require.Len(t, ids, 100)
	assert.Equal(t, 152, ids[0])
	assert.Equal(t, 251, ids[len(ids)-1])

	_, err = PokemonIDsByRegion("orre")
	require.ErrorIs(t, err, ErrUnknownRegion)
}

func TestRegionOf(t *testing.T) {
	region, ok := RegionOf(448)
	require.True(t, ok)
	assert.Equal(t, "sinnoh", region.Key)

	_, ok = RegionOf(5000)
	assert.False(t, ok)
}

func TestMegaEvolutionLookups(t *testing.T) {
	charizard := MegaEvolutionsFor(6)
	require.Len(t, charizard, 2)
	assert.Equal(t, domain.MegaTypeX, charizard[0].Type)
	assert.Equal(t, domain.MegaTypeY, charizard[1].Type)
	assert.Equal(t, domain.ArtworkURL(charizard[0].ID), charizard[0].Image)

	assert.True(t, HasMegaEvolution(448))
	assert.False(t, HasMegaEvolution(25))
	assert.Empty(t, MegaEvolutionsFor(25))

	mega, ok := MegaEvolutionByID(charizard[1].ID)
	require.True(t, ok)
	assert.Equal(t, "Charizardite Y", mega.MegaStone)

	_, ok = MegaEvolutionByID(1)
	assert.False(t, ok)
}

func TestMegaStonesAreDistinct(t *testing.T) {
	stones := MegaStones()
	seen := map[string]bool{}
	for _, s := range stones {
		assert.False(t, seen[s], s)
		seen[s] = true
	}
	assert.Contains(t, stones, "Gengarite")
}

func TestBestMegaEvolution(t *testing.T) {
	best, ok := BestMegaEvolution(MegaEvolutionsFor(150))
	require.True(t, ok)
	assert.Equal(t, "Mega Mewtwo X", best.Name)
	assert.Equal(t, 780, best.Stats.Total())

	_, ok = BestMegaEvolution(nil)
	assert.False(t, ok)
}

func TestCompareStats(t *testing.T) {
	gengar := &domain.Pokemon{ID: 94, Stats: []domain.PokemonStat{
		{BaseStat: 60, Stat: domain.NamedResource{Name: "hp"}},
		{BaseStat: 65, Stat: domain.NamedResource{Name: "attack"}},
		{BaseStat: 60, Stat: domain.NamedResource{Name: "defense"}},
		{BaseStat: 130, Stat: domain.NamedResource{Name: "special-attack"}},
		{BaseStat: 75, Stat: domain.NamedResource{Name: "special-defense"}},
	}}
	mega := MegaEvolutionsFor(94)[0]

	got := CompareStats(gengar, mega)

	require.Len(t, got, 6)
	assert.Equal(t, StatComparison{Stat: "hp", Normal: 60, Mega: 60, Difference: 0, Percentage: 0}, got[0])
	assert.Equal(t, StatComparison{Stat: "special-attack", Normal: 130, Mega: 170, Difference: 40, Percentage: 31}, got[3])
	assert.Equal(t, StatComparison{Stat: "speed", Normal: 0, Mega: 130, Difference: 130, Percentage: 0}, got[5])
}
