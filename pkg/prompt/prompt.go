package prompt

import (
	"fmt"
	"strings"
)

const System = "You are a Neo4j Cypher query expert. Generate a valid Cypher MATCH query. Only return the query itself."

var rules = []string{
	"ONLY return the Cypher query (no explanations, no comments).",
	"Start the response with `MATCH`.",
	"Ensure the query is syntactically correct for Neo4j.",
	"Do not include any additional text, headers, or formatting.",
}

type Example struct {
	Question string
	Query    string
}

type Prompt struct {
	System string
	User   string
}

type Builder struct {
	Schema   []string
	Examples []Example
}

// Default returns a builder for the gene and disease knowledge graph.
func Default() *Builder {
	return &Builder{
		Schema: []string{
			"(:Gene)-[:ASSOCIATED_WITH]->(:Disease)",
			"(:Gene)-[:REGULATES]->(:Protein)",
			"(:Disease)-[:HAS_SYMPTOM]->(:Symptom)",
			"(:Gene)-[:INTERACTS_WITH]->(:Gene)",
		},
		Examples: []Example{
			{
				Question: "Find genes related to Lung Cancer.",
				Query:    `MATCH (g:Gene)-[:ASSOCIATED_WITH]->(d:Disease {name: "Lung Cancer"}) RETURN g.name;`,
			},
			{
				Question: `Find all relationships for the gene "APOE".`,
				Query:    `MATCH (g:Gene {name: "APOE"})-[r]->(n) RETURN type(r), labels(n), n.name;`,
			},
			{
				Question: `Find diseases related to the gene "TP53".`,
				Query:    `MATCH (g:Gene {name: "TP53"})-[:ASSOCIATED_WITH]->(d:Disease) RETURN d.name;`,
			},
		},
	}
}

func (b *Builder) Build(question string) Prompt {
	var sb strings.Builder

	sb.WriteString("Generate a precise Cypher query based on the user question. Strictly follow these rules:\n\n")
	for i, rule := range rules {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, rule)
	}

	sb.WriteString("\n### Schema\n")
	for _, s := range b.Schema {
		fmt.Fprintf(&sb, "- `%s`\n", s)
	}

	if len(b.Examples) > 0 {
		sb.WriteString("\n### Examples\n")
		for _, e := range b.Examples {
			fmt.Fprintf(&sb, "Q: %s\nA: %s\n\n", e.Question, e.Query)
		}
	}

	sb.WriteString("\n### User Question\n")
	sb.WriteString(question)
	sb.WriteString("\n")

	return Prompt{System: System, User: sb.String()}
}
