package route

// Route is the retrieval strategy chosen for a query.
type Route string

// Retrieval route constants.
const (
	// Structured runs an explicit relational filter query.
	Structured Route = "STRUCTURED"
	Semantic   Route = "SEMANTIC"
	// Hybrid widens a structured pool and re-ranks it semantically.
	Hybrid Route = "HYBRID"
	// RAG looks up a named consultant and answers a question about them.
	RAG Route = "RAG"
)

// IsValid checks if the route is one of the supported values.
func (r Route) IsValid() bool {
	return r == Structured || r == Semantic || r == Hybrid || r == RAG
}
