package career

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizResult is the persisted ScoreSummary of one submission. It is never
// updated after creation.
type QuizResult struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	TechnicalScore     int `gorm:"column:technical_score;not null" json:"technical_score"`
	CommunicationScore int `gorm:"column:communication_score;not null" json:"communication_score"`
	AnalyticalScore    int `gorm:"column:analytical_score;not null" json:"analytical_score"`
	CreativityScore    int `gorm:"column:creativity_score;not null" json:"creativity_score"`

	FieldOfInterest   string                      `gorm:"column:field_of_interest" json:"field_of_interest"`
	DomainInterests   datatypes.JSONMap           `gorm:"column:domain_interests" json:"domain_interests"`
	EducationLevel    string                      `gorm:"column:education_level" json:"education_level"`
	WorkStyle         string                      `gorm:"column:work_style" json:"work_style"`
	Motivation        string                      `gorm:"column:motivation" json:"motivation"`
	SalaryExpectation string                      `gorm:"column:salary_expectation" json:"salary_expectation"`
	Strengths         datatypes.JSONSlice[string] `gorm:"column:strengths" json:"strengths"`
	Weaknesses        datatypes.JSONSlice[string] `gorm:"column:weaknesses" json:"weaknesses"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (QuizResult) TableName() string { return "quiz_result" }

func (q *QuizResult) BeforeCreate(*gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// AverageSkill is the arithmetic mean of the four skill ratings.
func (q *QuizResult) AverageSkill() float64 {
	if q == nil {
		return 0
	}
	return float64(q.TechnicalScore+q.CommunicationScore+q.AnalyticalScore+q.CreativityScore) / 4
}

// CareerMatch is one ranked career recommendation for a submission. Rank 1 is
// the best match.
type CareerMatch struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	QuizResultID uuid.UUID                   `gorm:"type:uuid;not null;index:idx_career_match_rank,unique,priority:1" json:"quiz_result_id"`
	UserID       uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	Rank         int                         `gorm:"column:rank;not null;index:idx_career_match_rank,unique,priority:2" json:"rank"`
	Title        string                      `gorm:"column:title;not null" json:"title"`
	MatchScore   float64                     `gorm:"column:match_score;not null" json:"match_score"`
	Description  string                      `gorm:"column:description;type:text" json:"description"`
	AvgSalary    string                      `gorm:"column:avg_salary" json:"avg_salary"`
	GrowthRate   string                      `gorm:"column:growth_rate" json:"growth_rate"`
	KeySkills    datatypes.JSONSlice[string] `gorm:"column:key_skills" json:"key_skills"`
	CreatedAt    time.Time                   `gorm:"not null" json:"created_at"`
}

func (CareerMatch) TableName() string { return "career_match" }

func (c *CareerMatch) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
