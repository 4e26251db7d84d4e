package main

import (
	"fmt"
	"strings"

	"repolens/internal/knowledge"
	"repolens/internal/output"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as deterministic JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := output.EncodeIndented(resp, "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *ImpactResponseCLI:
		return formatImpactHuman(v), nil
	case *ConceptsResponseCLI:
		return formatConceptsHuman(v), nil
	case *CategoriesResponseCLI:
		return formatCategoriesHuman(v), nil
	case *RelatedResponseCLI:
		return formatRelatedHuman(v), nil
	case *SearchResponseCLI:
		return formatSearchHuman(v), nil
	case *ExportResponseCLI:
		return formatExportHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatImpactHuman(resp *ImpactResponseCLI) string {
	var b strings.Builder
	r := resp.Result

	fmt.Fprintf(&b, "Impact Analysis: %s\n", r.Origin.ID)
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	fmt.Fprintf(&b, "Risk: %s (score %d/100)\n", strings.ToUpper(string(r.Risk.Level)), r.Risk.Score)
	for _, f := range r.Risk.Factors {
		fmt.Fprintf(&b, "  - %s\n", f)
	}
	fmt.Fprintf(&b, "\n%s\n\n", resp.Summary)

	m := r.Metrics
	fmt.Fprintf(&b, "Metrics: %d direct, %d indirect, %d potential (max chain %d)\n",
		m.DirectImpact, m.IndirectImpact, m.PotentialImpact, m.MaxChainLength)
	fmt.Fprintf(&b, "Blast radius: %d files in %d directories\n\n",
		r.BlastRadius.FileCount, r.BlastRadius.DirectoryCount)

	if len(r.Dependents) > 0 {
		b.WriteString("Dependents:\n")
		for _, n := range r.Dependents {
			fmt.Fprintf(&b, "  %-9s d=%d w=%.1f  %s\n", n.ImpactLevel, n.Distance, n.Weight, n.ID)
		}
		b.WriteString("\n")
	}

	if len(r.Dependencies) > 0 {
		b.WriteString("Dependencies:\n")
		for _, n := range r.Dependencies {
			fmt.Fprintf(&b, "  %-9s d=%d  %s\n", n.ImpactLevel, n.Distance, n.ID)
		}
		b.WriteString("\n")
	}

	if len(r.CriticalPaths) > 0 {
		b.WriteString("Critical paths:\n")
		for _, p := range r.CriticalPaths {
			fmt.Fprintf(&b, "  %s\n", strings.Join(p, " -> "))
		}
		b.WriteString("\n")
	}

	if len(r.Safe) > 0 {
		fmt.Fprintf(&b, "Safe files (%d):\n", len(r.Safe))
		for _, s := range r.Safe {
			fmt.Fprintf(&b, "  %s\n", s.Path)
		}
		b.WriteString("\n")
	}

	if r.Limits != nil && r.Limits.HasLimitations() {
		b.WriteString("Notes:\n")
		for _, n := range r.Limits.Notes {
			fmt.Fprintf(&b, "  ! %s\n", n)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatConceptsHuman(resp *ConceptsResponseCLI) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Central Concepts: %s\n", resp.Snapshot)
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	fmt.Fprintf(&b, "%d concepts, %d relationships, %d categories\n\n",
		resp.Stats.Nodes, resp.Stats.Edges, resp.Stats.Categories)

	if len(resp.Concepts) == 0 {
		b.WriteString("No concepts found.")
		return b.String()
	}

	for i, c := range resp.Concepts {
		fmt.Fprintf(&b, "%2d. %-30s %-16s score=%s files=%d\n", i+1, c.ID, c.Category, output.FormatFloat(c.Score), len(c.Files))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatCategoriesHuman(resp *CategoriesResponseCLI) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Concept Categories: %s\n", resp.Snapshot)
	b.WriteString(strings.Repeat("=", 60) + "\n")

	for _, g := range resp.Categories {
		fmt.Fprintf(&b, "\n%s (%d)\n", g.Category, len(g.Concepts))
		for _, c := range g.Concepts {
			fmt.Fprintf(&b, "  %-30s weight=%.1f\n", c.ID, c.Weight)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatRelatedHuman(resp *RelatedResponseCLI) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Related to %s (%s)\n", resp.Concept.ID, resp.Concept.Category)
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	writeNodeList(&b, "Direct", resp.Direct)
	b.WriteString("\n")
	writeNodeList(&b, "Indirect", resp.Indirect)
	return strings.TrimRight(b.String(), "\n")
}

func formatSearchHuman(resp *SearchResponseCLI) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Search: %q\n", resp.Query)
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	if len(resp.Results) == 0 {
		b.WriteString("No matching concepts.")
		return b.String()
	}
	for _, n := range resp.Results {
		fmt.Fprintf(&b, "  %-30s %s\n", n.ID, n.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatExportHuman(resp *ExportResponseCLI) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Exported to %s\n", resp.Database)
	fmt.Fprintf(&b, "  Graph run:  %s (%d concepts, %d edges)\n", resp.GraphRun, resp.Concepts, resp.Edges)
	if resp.ImpactRun != "" {
		fmt.Fprintf(&b, "  Impact run: %s (%d nodes)\n", resp.ImpactRun, resp.ImpactNodes)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeNodeList(b *strings.Builder, title string, nodes []knowledge.ConceptNode) {
	fmt.Fprintf(b, "%s (%d):\n", title, len(nodes))
	if len(nodes) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, n := range nodes {
		fmt.Fprintf(b, "  %-30s %s\n", n.ID, n.Category)
	}
}
