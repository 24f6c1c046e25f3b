package domain

// Evolution trigger names reported by PokeAPI.
const (
	TriggerLevelUp = "level-up"
	TriggerUseItem = "use-item"
	TriggerTrade   = "trade"
	TriggerShed    = "shed"
	TriggerOther   = "other"
)

// Gender codes used by evolution details.
const (
	GenderFemale = 1
	GenderMale   = 2
)

// ChainReference points from a species to its evolution chain.
type ChainReference struct {
	URL string `json:"url"`
}

type EvolutionChain struct {
	ID              int            `json:"id"`
	BabyTriggerItem *NamedResource `json:"baby_trigger_item"`
	Chain           *EvolutionNode `json:"chain"`
}

// EvolutionNode is one species position in the chain tree. Species is nil
// when upstream data omitted it.
type EvolutionNode struct {
	IsBaby           bool              `json:"is_baby"`
	Species          *NamedResource    `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []*EvolutionNode  `json:"evolves_to"`
}

// EvolutionDetail describes the conditions producing a node from its parent.
// Optional qualifiers are pointers: nil means the API sent null.
type EvolutionDetail struct {
	Trigger               NamedResource  `json:"trigger"`
	Item                  *NamedResource `json:"item"`
	Gender                *int           `json:"gender"`
	HeldItem              *NamedResource `json:"held_item"`
	KnownMove             *NamedResource `json:"known_move"`
	KnownMoveType         *NamedResource `json:"known_move_type"`
	Location              *NamedResource `json:"location"`
	MinLevel              *int           `json:"min_level"`
	MinHappiness          *int           `json:"min_happiness"`
	MinBeauty             *int           `json:"min_beauty"`
	MinAffection          *int           `json:"min_affection"`
	NeedsOverworldRain    bool           `json:"needs_overworld_rain"`
	PartySpecies          *NamedResource `json:"party_species"`
	PartyType             *NamedResource `json:"party_type"`
	RelativePhysicalStats *int           `json:"relative_physical_stats"`
	TimeOfDay             string         `json:"time_of_day"`
	TradeSpecies          *NamedResource `json:"trade_species"`
	TurnUpsideDown        bool           `json:"turn_upside_down"`
}

// EvolutionStage is the flattened, display-ready form of a chain node.
type EvolutionStage struct {
	Name               string `json:"name"`
	ID                 int    `json:"id"`
	Image              string `json:"image,omitempty"`
	IsEvolved          bool   `json:"is_evolved"`
	EvolutionMethod    string `json:"evolution_method"`
	EvolutionLevel     *int   `json:"evolution_level,omitempty"`
	EvolutionItem      string `json:"evolution_item,omitempty"`
	EvolutionCondition string `json:"evolution_condition,omitempty"`
	IsRegionalForm     bool   `json:"is_regional_form,omitempty"`
	Region             string `json:"region,omitempty"`
}
