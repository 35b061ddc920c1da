package criteria

import (
	"sort"
	"strings"
)

// Criteria holds explicit filter constraints extracted from a query.
// Empty sets mean "no constraint", never "match nothing".
type Criteria struct {
	skillsAll       []string
	skillsAny       []string
	roles           []string
	locations       []string
	minQualityScore *int
	availability    string
}

// New creates normalized criteria: skill, role and location names are
// lowercased, trimmed, deduplicated and sorted so that two extractions of the
// same query compare equal.
func New(
	skillsAll, skillsAny, roles, locations []string,
	minQualityScore *int,
	availability string,
) Criteria {
	return Criteria{
		skillsAll:       normalizeSet(skillsAll),
		skillsAny:       normalizeSet(skillsAny),
		roles:           normalizeSet(roles),
		locations:       normalizeSet(locations),
		minQualityScore: minQualityScore,
		availability:    strings.TrimSpace(availability),
	}
}

// SkillsAll returns skills every matched consultant must carry (AND).
func (c *Criteria) SkillsAll() []string { return c.skillsAll }

// SkillsAny returns skills of which at least one must match (OR).
func (c *Criteria) SkillsAny() []string { return c.skillsAny }

// Roles returns the requested role names.
func (c *Criteria) Roles() []string { return c.roles }

// Locations returns the requested locations.
func (c *Criteria) Locations() []string { return c.locations }

// MinQualityScore returns the CV quality lower bound, nil when unconstrained.
func (c *Criteria) MinQualityScore() *int { return c.minQualityScore }

// Availability returns the requested availability, empty when unconstrained.
func (c *Criteria) Availability() string { return c.availability }

// IsEmpty reports whether no constraint is set at all.
func (c *Criteria) IsEmpty() bool {
	return len(c.skillsAll) == 0 && len(c.skillsAny) == 0 &&
		len(c.roles) == 0 && len(c.locations) == 0 &&
		c.minQualityScore == nil && c.availability == ""
}

func normalizeSet(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}
