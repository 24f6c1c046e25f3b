package evolution

import (
	"pokedex/explorer/internal/domain"

	log "github.com/sirupsen/logrus"
)

type frame struct {
	node         *domain.EvolutionNode
	isEvolved    bool
	parentMethod string
}

// Flatten walks the chain depth-first, pre-order, and returns one stage per
// node. Branches keep the order of evolves_to. Nodes without species are
// dropped along with their subtree. A nil chain yields an empty slice.
func Flatten(chain *domain.EvolutionChain) []domain.EvolutionStage {
	stages := make([]domain.EvolutionStage, 0)
	if chain == nil || chain.Chain == nil {
		return stages
	}

	stack := []frame{{node: chain.Chain, isEvolved: false, parentMethod: baseMethod}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current.node == nil || current.node.Species == nil {
			log.Debugf("Skipping evolution node without species in chain %d", chain.ID)
			continue
		}

		stage := buildStage(current)
		stages = append(stages, stage)

		for i := len(current.node.EvolvesTo) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				node:         current.node.EvolvesTo[i],
				isEvolved:    true,
				parentMethod: stage.EvolutionMethod,
			})
		}
	}

	return stages
}

func buildStage(f frame) domain.EvolutionStage {
	species := f.node.Species

	stage := domain.EvolutionStage{
		Name:            species.Name,
		IsEvolved:       f.isEvolved,
		EvolutionMethod: baseMethod,
	}

	if id, err := species.ID(); err == nil {
		stage.ID = id
		stage.Image = domain.ArtworkURL(id)
	} else {
		log.Debugf("Species %q has no usable id: %v", species.Name, err)
	}

	if f.isEvolved {
		stage.EvolutionMethod = f.parentMethod
	}

	if f.isEvolved && len(f.node.EvolutionDetails) > 0 {
		c := Classify(&f.node.EvolutionDetails[0])
		if c.Method != "" {
			stage.EvolutionMethod = c.Method
		}
		stage.EvolutionLevel = c.Level
		stage.EvolutionItem = c.Item
		stage.EvolutionCondition = c.Condition
	}

	if stage.EvolutionMethod == "" {
		stage.EvolutionMethod = unknownMethod
	}

	if region, ok := RegionalForm(species.Name); ok {
		stage.IsRegionalForm = true
		stage.Region = region
	}

	return stage
}
