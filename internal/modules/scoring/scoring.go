package scoring

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Answers maps question ids to raw answer values (string, number or list).
type Answers map[string]any

type SkillRatings struct {
	Technical     int `json:"technical"`
	Communication int `json:"communication"`
	Analytical    int `json:"analytical"`
	Creativity    int `json:"creativity"`
}

func (s SkillRatings) Average() float64 {
	return float64(s.Technical+s.Communication+s.Analytical+s.Creativity) / 4.0
}

type Scores struct {
	Skills            SkillRatings       `json:"skills"`
	FieldOfInterest   string             `json:"field_of_interest"`
	DomainInterests   map[string]float64 `json:"domain_interests"`
	EducationLevel    string             `json:"education_level,omitempty"`
	WorkStyle         string             `json:"work_style,omitempty"`
	Motivation        string             `json:"motivation,omitempty"`
	SalaryExpectation string             `json:"salary_expectation,omitempty"`
}

type RankedCareer struct {
	Title       string   `json:"title"`
	Domain      string   `json:"domain"`
	MatchScore  float64  `json:"match_score"`
	Description string   `json:"description"`
	AvgSalary   string   `json:"avg_salary"`
	GrowthRate  string   `json:"growth_rate"`
	KeySkills   []string `json:"key_skills"`
}

type Result struct {
	Scores        Scores         `json:"scores"`
	RankedCareers []RankedCareer `json:"ranked_careers"`
}

// Scorer is a pure function from answers to scores and a ranked career list.
// Careers are returned in descending match-score order. An error means the
// answers were malformed.
type Scorer interface {
	Compute(answers Answers) (*Result, error)
}

const (
	minRating     = 1
	maxRating     = 5
	defaultRating = 3

	skillWeight  = 70.0
	domainWeight = 30.0

	// DefaultMinMatchScore drops careers that fit too poorly to be worth showing.
	DefaultMinMatchScore = 40.0
)

type defaultScorer struct {
	catalog  []Career
	minScore float64
}

// NewDefaultScorer returns a deterministic scorer over the built-in catalog.
func NewDefaultScorer() Scorer {
	return &defaultScorer{catalog: DefaultCatalog(), minScore: DefaultMinMatchScore}
}

func NewScorer(catalog []Career, minScore float64) Scorer {
	return &defaultScorer{catalog: catalog, minScore: minScore}
}

func (s *defaultScorer) Compute(answers Answers) (*Result, error) {
	if answers == nil {
		return nil, fmt.Errorf("answers required")
	}
	scores, err := ParseScores(answers)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedCareer, 0, len(s.catalog))
	for _, c := range s.catalog {
		score := matchScore(c, scores)
		if score < s.minScore {
			continue
		}
		ranked = append(ranked, RankedCareer{
			Title:       c.Title,
			Domain:      c.Domain,
			MatchScore:  score,
			Description: c.Description,
			AvgSalary:   c.AvgSalary,
			GrowthRate:  c.GrowthRate,
			KeySkills:   append([]string(nil), c.KeySkills...),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchScore != ranked[j].MatchScore {
			return ranked[i].MatchScore > ranked[j].MatchScore
		}
		return ranked[i].Title < ranked[j].Title
	})
	return &Result{Scores: scores, RankedCareers: ranked}, nil
}

func matchScore(c Career, s Scores) float64 {
	w := c.Weights
	total := w.Technical + w.Communication + w.Analytical + w.Creativity
	skill := 0.0
	if total > 0 {
		sum := w.Technical*float64(s.Skills.Technical) +
			w.Communication*float64(s.Skills.Communication) +
			w.Analytical*float64(s.Skills.Analytical) +
			w.Creativity*float64(s.Skills.Creativity)
		skill = sum / (maxRating * total) * skillWeight
	}
	domain := 0.0
	if c.Domain == s.FieldOfInterest {
		domain = domainWeight
	} else if v, ok := s.DomainInterests[c.Domain]; ok {
		domain = v * domainWeight
	}
	return math.Round((skill+domain)*10) / 10
}

// ParseScores reads the skill ratings and profile fields out of answers.
// Missing ratings default to the midpoint; present ratings must be integers in
// 1..5.
func ParseScores(answers Answers) (Scores, error) {
	var out Scores
	var err error
	if out.Skills.Technical, err = rating(answers, "technical"); err != nil {
		return Scores{}, err
	}
	if out.Skills.Communication, err = rating(answers, "communication"); err != nil {
		return Scores{}, err
	}
	if out.Skills.Analytical, err = rating(answers, "analytical"); err != nil {
		return Scores{}, err
	}
	if out.Skills.Creativity, err = rating(answers, "creativity"); err != nil {
		return Scores{}, err
	}

	out.DomainInterests, err = domainInterests(answers["domain_interests"])
	if err != nil {
		return Scores{}, err
	}
	out.FieldOfInterest = normalizeDomain(text(answers["field_of_interest"]))
	if out.FieldOfInterest == "" {
		out.FieldOfInterest = topDomain(out.DomainInterests)
	}
	if out.FieldOfInterest != "" {
		out.DomainInterests[out.FieldOfInterest] = 1
	}
	out.EducationLevel = text(answers["education_level"])
	out.WorkStyle = text(answers["work_style"])
	out.Motivation = text(answers["motivation"])
	out.SalaryExpectation = text(answers["salary_expectation"])
	return out, nil
}

func rating(answers Answers, key string) (int, error) {
	raw, ok := answers[key]
	if !ok || raw == nil {
		return defaultRating, nil
	}
	var f float64
	switch v := raw.(type) {
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case float64:
		f = v
	case float32:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("answer %q: not a number: %q", key, v)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("answer %q: unsupported type %T", key, raw)
	}
	if f != math.Trunc(f) || f < minRating || f > maxRating {
		return 0, fmt.Errorf("answer %q: rating must be an integer in %d..%d, got %v", key, minRating, maxRating, f)
	}
	return int(f), nil
}

func domainInterests(raw any) (map[string]float64, error) {
	out := map[string]float64{}
	switch v := raw.(type) {
	case nil:
	case []any:
		for i, item := range v {
			d := normalizeDomain(text(item))
			if d == "" {
				continue
			}
			if _, seen := out[d]; seen {
				continue
			}
			out[d] = math.Max(0.2, 1-0.2*float64(i))
		}
	case []string:
		for i, item := range v {
			d := normalizeDomain(item)
			if d == "" {
				continue
			}
			if _, seen := out[d]; seen {
				continue
			}
			out[d] = math.Max(0.2, 1-0.2*float64(i))
		}
	case map[string]any:
		for k, w := range v {
			d := normalizeDomain(k)
			if d == "" {
				continue
			}
			f, ok := w.(float64)
			if !ok {
				return nil, fmt.Errorf("domain_interests %q: weight must be a number", k)
			}
			out[d] = math.Min(1, math.Max(0, f))
		}
	case string:
		if d := normalizeDomain(v); d != "" {
			out[d] = 1
		}
	default:
		return nil, fmt.Errorf("domain_interests: unsupported type %T", raw)
	}
	return out, nil
}

func topDomain(m map[string]float64) string {
	best, bestW := "", -1.0
	for d, w := range m {
		if w > bestW || (w == bestW && d < best) {
			best, bestW = d, w
		}
	}
	return best
}

func text(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func normalizeDomain(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
