package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"pokedex/explorer/internal/domain"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func displayName(name string) string {
	parts := strings.Split(name, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

func writeStages(w io.Writer, stages []domain.EvolutionStage) {
	for _, s := range stages {
		line := fmt.Sprintf("  #%-4d %-20s %s", s.ID, displayName(s.Name), s.EvolutionMethod)
		if s.EvolutionCondition != "" {
			line += " (" + s.EvolutionCondition + ")"
		}
		if s.IsRegionalForm {
			line += " [" + s.Region + "]"
		}
		fmt.Fprintln(w, line)
	}
}

func writeListPage(w io.Writer, page *domain.PokemonListPage, offset int) {
	for _, item := range page.Results {
		id, err := item.ID()
		if err != nil {
			fmt.Fprintf(w, "      %s\n", displayName(item.Name))
			continue
		}
		fmt.Fprintf(w, "#%-4d %s\n", id, displayName(item.Name))
	}
	fmt.Fprintf(w, "\nShowing %d-%d of %d\n", offset+1, offset+len(page.Results), page.Count)
	if page.HasMore() {
		fmt.Fprintf(w, "Next page: --offset %d\n", offset+len(page.Results))
	}
}
