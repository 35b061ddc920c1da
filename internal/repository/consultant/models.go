package consultant

import "time"

// Consultant is the relational consultant record.
type Consultant struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:255;index"`
	Role         string `gorm:"size:128"`
	Location     string `gorm:"size:128"`
	Availability string `gorm:"size:64"`
	Active       bool

	CVs    []CV    `gorm:"foreignKey:ConsultantID"`
	Skills []Skill `gorm:"many2many:consultant_skills"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CV is a single curriculum vitae belonging to a consultant. QualityScore is
// a 0..100 editorial rating, nil when the CV has not been scored yet.
type CV struct {
	ID           string `gorm:"primaryKey;size:36"`
	ConsultantID string `gorm:"size:36;index"`
	Title        string `gorm:"size:255"`
	Summary      string `gorm:"type:text"`
	QualityScore *int
	Active       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Skill is a dictionary entry. Names are stored normalized lowercase.
type Skill struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:128;uniqueIndex"`
}
