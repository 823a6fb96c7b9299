package graph

import "strings"

const (
	schemeNeo4j = "neo4j"

	defaultPort = 7687

	// Certificate handling suffixes understood by the Neo4j driver.
	suffixSecure     = "+s"
	suffixSelfSigned = "+ssc"
)

// SchemeType is the URI scheme used to reach the graph database. The
// "neo4j" family enables cluster routing, "bolt" connects to a single server.
type SchemeType string

func (t SchemeType) String() string {
	return t.Name()
}

func (t SchemeType) Name() string {
	s := strings.ToLower(string(t))
	switch s {
	case "", "neo4j", "neo4j+s", "neo4j+ssc", "bolt", "bolt+s", "bolt+ssc":
		if s == "" {
			return schemeNeo4j
		}
		return s
	default:
		return ""
	}
}

func (t SchemeType) Port() int {
	if t.Name() == "" {
		return 0
	}
	return defaultPort
}

func (t SchemeType) IsRouting() bool {
	return strings.HasPrefix(t.Name(), schemeNeo4j)
}

func (t SchemeType) IsEncrypted() bool {
	name := t.Name()
	return strings.HasSuffix(name, suffixSecure) || strings.HasSuffix(name, suffixSelfSigned)
}

func (t SchemeType) IsValid() bool {
	return t.Name() != ""
}
