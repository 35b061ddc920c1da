package domain

import "github.com/hireon/talentsearch/internal/domain/search/criteria"

// ConsultantSummary is the read projection returned by structured search.
// Skills are normalized lowercase names; QualityScores holds one entry per
// CV that carries a score.
type ConsultantSummary struct {
	ID            string
	Name          string
	Role          string
	Location      string
	Availability  string
	Skills        []string
	CVCount       int
	QualityScores []int
}

// CVDocument is the read projection used by the RAG route as answer context.
type CVDocument struct {
	ID           string
	ConsultantID string
	Title        string
	Summary      string
	QualityScore *int
	Active       bool
}

// Page is a paginated result set with the total row count from a separate
// count query.
type Page struct {
	Items []ConsultantSummary
	Total int
}

// ConsultantQuery is the structured-search input. All conditions are
// conjunctive. Page is zero-based.
type ConsultantQuery struct {
	Criteria        criteria.Criteria
	NameContains    string
	MinQualityScore *int
	OnlyActiveCV    bool
	Page            int
	Size            int
}
