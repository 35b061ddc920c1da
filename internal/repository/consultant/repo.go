package consultant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hireon/talentsearch/internal/domain"
)

// Repo implements structured search over the relational consultant store.
type Repo struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New creates a consultant repository.
func New(db *gorm.DB, logger *zap.Logger) *Repo {
	return &Repo{db: db, logger: logger}
}

// AutoMigrate creates the schema. Development convenience only.
func (r *Repo) AutoMigrate() error {
	if err := r.db.AutoMigrate(&Consultant{}, &CV{}, &Skill{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Search runs the count query followed by the data query and loads summary
// projections for the matched page. Default sort is name ascending.
func (r *Repo) Search(ctx context.Context, q domain.ConsultantQuery) (domain.Page, error) {
	if q.Size <= 0 {
		return domain.Page{}, fmt.Errorf("%w: page size must be positive", domain.ErrValidation)
	}
	if q.Page < 0 {
		return domain.Page{}, fmt.Errorf("%w: page must not be negative", domain.ErrValidation)
	}

	base, err := r.buildFilterQuery(ctx, q)
	if err != nil {
		return domain.Page{}, err
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("consultants.id").Count(&total).Error; err != nil {
		return domain.Page{}, fmt.Errorf("count consultants: %w", err)
	}

	var ids []string
	err = base.Session(&gorm.Session{}).
		Select("consultants.id").
		Order("consultants.name ASC").
		Offset(q.Page * q.Size).
		Limit(q.Size).
		Pluck("consultants.id", &ids).Error
	if err != nil {
		return domain.Page{}, fmt.Errorf("query consultants: %w", err)
	}

	items, err := r.SummariesByIDs(ctx, ids)
	if err != nil {
		return domain.Page{}, err
	}

	return domain.Page{Items: items, Total: int(total)}, nil
}

// buildFilterQuery assembles the conjunctive filter predicate. Unknown skill
// names are dropped from the filter rather than forcing a zero-result query.
func (r *Repo) buildFilterQuery(ctx context.Context, q domain.ConsultantQuery) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Model(&Consultant{}).Where("consultants.active = ?", true)

	if q.NameContains != "" {
		tx = tx.Where("LOWER(consultants.name) LIKE ?", "%"+strings.ToLower(q.NameContains)+"%")
	}

	if q.MinQualityScore != nil {
		tx = tx.Where(
			"EXISTS (SELECT 1 FROM cvs WHERE cvs.consultant_id = consultants.id AND cvs.quality_score >= ?)",
			*q.MinQualityScore,
		)
	}

	if q.OnlyActiveCV {
		tx = tx.Where(
			"EXISTS (SELECT 1 FROM cvs WHERE cvs.consultant_id = consultants.id AND cvs.active = ?)",
			true,
		)
	}

	if roles := q.Criteria.Roles(); len(roles) > 0 {
		tx = tx.Where("LOWER(consultants.role) IN ?", roles)
	}
	if locs := q.Criteria.Locations(); len(locs) > 0 {
		tx = tx.Where("LOWER(consultants.location) IN ?", locs)
	}
	if avail := q.Criteria.Availability(); avail != "" {
		tx = tx.Where("LOWER(consultants.availability) = ?", strings.ToLower(avail))
	}

	skillsAll, err := r.knownSkills(ctx, q.Criteria.SkillsAll())
	if err != nil {
		return nil, err
	}
	skillsAny, err := r.knownSkills(ctx, q.Criteria.SkillsAny())
	if err != nil {
		return nil, err
	}

	if clause, args := skillsPredicate(skillsAll, skillsAny); clause != "" {
		tx = tx.Where(clause, args...)
	}

	return tx, nil
}

// Skill filter clauses. skillsAllClause keeps AND semantics via grouped
// count-distinct without multiplying duplicate rows; skillsAnyClause is a
// plain membership test.
const (
	skillsAllClause = `consultants.id IN (
		SELECT cs.consultant_id FROM consultant_skills cs
		JOIN skills s ON s.id = cs.skill_id
		WHERE s.name IN ?
		GROUP BY cs.consultant_id
		HAVING COUNT(DISTINCT s.name) >= ?
	)`

	skillsAnyClause = `EXISTS (
		SELECT 1 FROM consultant_skills cs
		JOIN skills s ON s.id = cs.skill_id
		WHERE cs.consultant_id = consultants.id AND s.name IN ?
	)`
)

// skillsPredicate selects the skill filter clause. A non-empty skillsAll
// short-circuits skillsAny entirely rather than intersecting both; queries
// asking for must-have skills never widen through nice-to-haves. Returns an
// empty clause when neither set is constrained.
func skillsPredicate(skillsAll, skillsAny []string) (string, []any) {
	switch {
	case len(skillsAll) > 0:
		return skillsAllClause, []any{skillsAll, len(skillsAll)}
	case len(skillsAny) > 0:
		return skillsAnyClause, []any{skillsAny}
	}
	return "", nil
}

// knownSkills filters the requested names down to ones present in the skill
// dictionary.
func (r *Repo) knownSkills(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var known []string
	err := r.db.WithContext(ctx).Model(&Skill{}).
		Where("name IN ?", names).
		Pluck("name", &known).Error
	if err != nil {
		return nil, fmt.Errorf("resolve skills: %w", err)
	}

	if len(known) < len(names) && r.logger != nil {
		r.logger.Debug("Dropped unknown skills from filter",
			zap.Strings("requested", names),
			zap.Strings("known", known),
		)
	}

	return known, nil
}

// SummariesByIDs loads summary projections preserving the input ID order.
func (r *Repo) SummariesByIDs(ctx context.Context, ids []string) ([]domain.ConsultantSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []Consultant
	err := r.db.WithContext(ctx).
		Preload("CVs").
		Preload("Skills").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load consultants: %w", err)
	}

	byID := make(map[string]domain.ConsultantSummary, len(rows))
	for i := range rows {
		byID[rows[i].ID] = toSummary(&rows[i])
	}

	out := make([]domain.ConsultantSummary, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// maxNameCandidates bounds the candidate set loaded for name resolution.
const maxNameCandidates = 10

// FindByName resolves a consultant by name, case-insensitively. An exact
// match wins outright; otherwise a single substring match is accepted, and
// several substring matches are ambiguous and reported as not found.
func (r *Repo) FindByName(ctx context.Context, name string) (domain.ConsultantSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ConsultantSummary{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	var rows []Consultant
	err := r.db.WithContext(ctx).
		Preload("CVs").
		Preload("Skills").
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%").
		Order("name ASC").
		Limit(maxNameCandidates).
		Find(&rows).Error
	if err != nil {
		return domain.ConsultantSummary{}, fmt.Errorf("find consultant: %w", err)
	}

	match, err := pickByName(rows, name)
	if err != nil {
		return domain.ConsultantSummary{}, err
	}
	return toSummary(match), nil
}

// pickByName selects from the substring candidates: exact case-insensitive
// equality first, then a lone partial match. Zero candidates and ambiguous
// partials both resolve to ErrConsultantNotFound.
func pickByName(rows []Consultant, name string) (*Consultant, error) {
	lower := strings.ToLower(name)
	for i := range rows {
		if strings.ToLower(rows[i].Name) == lower {
			return &rows[i], nil
		}
	}

	switch len(rows) {
	case 0:
		return nil, domain.ErrConsultantNotFound
	case 1:
		return &rows[0], nil
	}
	return nil, fmt.Errorf("%w: %d consultants match %q", domain.ErrConsultantNotFound, len(rows), name)
}

// CVsForConsultant loads the active CV documents for the RAG answer context.
func (r *Repo) CVsForConsultant(ctx context.Context, consultantID string) ([]domain.CVDocument, error) {
	var rows []CV
	err := r.db.WithContext(ctx).
		Where("consultant_id = ? AND active = ?", consultantID, true).
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load cvs: %w", err)
	}

	docs := make([]domain.CVDocument, 0, len(rows))
	for _, cv := range rows {
		docs = append(docs, domain.CVDocument{
			ID:           cv.ID,
			ConsultantID: cv.ConsultantID,
			Title:        cv.Title,
			Summary:      cv.Summary,
			QualityScore: cv.QualityScore,
			Active:       cv.Active,
		})
	}
	return docs, nil
}

func toSummary(c *Consultant) domain.ConsultantSummary {
	skills := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		skills = append(skills, s.Name)
	}

	var scores []int
	for _, cv := range c.CVs {
		if cv.QualityScore != nil {
			scores = append(scores, *cv.QualityScore)
		}
	}

	return domain.ConsultantSummary{
		ID:            c.ID,
		Name:          c.Name,
		Role:          c.Role,
		Location:      c.Location,
		Availability:  c.Availability,
		Skills:        skills,
		CVCount:       len(c.CVs),
		QualityScores: scores,
	}
}
