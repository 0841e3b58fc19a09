package resume

import (
	"bytes"
	"strings"
	"time"
)

// DateLayout is the only layout dates are rendered with.
const DateLayout = "2006-01-02"

// Skill categories.
const (
	CategoryTechnical = "technical"
	CategoryLanguage  = "language"
	CategorySoft      = "soft"
)

// DefaultSkillLevel is assigned when the source does not state a level.
const DefaultSkillLevel = "intermediate"

// Date is a calendar date. The zero value means the date is absent.
type Date struct {
	time.Time
}

// NewDate returns the calendar date for the given components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Valid reports whether the date is present.
func (d Date) Valid() bool {
	return !d.IsZero()
}

func (d Date) String() string {
	if !d.Valid() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON accepts ISO dates and null. Anything else leaves the date absent.
func (d *Date) UnmarshalJSON(data []byte) error {
	*d = ParseISODate(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	return nil
}

// ParseISODate parses YYYY-MM-DD, and YYYY-MM as the first day of the month.
// Unparseable input yields an absent date.
func ParseISODate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return Date{}
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}
	}
	if t, err := time.Parse("2006-01", s); err == nil {
		return Date{Time: t}
	}
	return Date{}
}

type PersonalInfo struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

type Education struct {
	Institution  string  `json:"institution"`
	Degree       string  `json:"degree"`
	FieldOfStudy string  `json:"field_of_study"`
	StartDate    Date    `json:"start_date"`
	EndDate      Date    `json:"end_date"`
	GPA          float64 `json:"gpa"`
	Description  string  `json:"description"`
}

type Experience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     string   `json:"location"`
	StartDate    Date     `json:"start_date"`
	EndDate      Date     `json:"end_date"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

type Skill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    string `json:"level"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
	StartDate    Date     `json:"start_date"`
	EndDate      Date     `json:"end_date"`
}

// Resume is the structured representation produced by ingestion.
// Downstream components treat it as read-only.
type Resume struct {
	PersonalInfo PersonalInfo `json:"personal_info"`
	Summary      string       `json:"summary"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Skills       []Skill      `json:"skills"`
	Projects     []Project    `json:"projects"`
}

// New returns a resume with every field empty and every list non-nil.
func New() *Resume {
	return &Resume{
		Education:  []Education{},
		Experience: []Experience{},
		Skills:     []Skill{},
		Projects:   []Project{},
	}
}

// Normalize enforces the record invariants in place: lists are non-nil, a current
// position has no end date, and skills carry a category and a level.
func (r *Resume) Normalize() {
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Skills == nil {
		r.Skills = []Skill{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}

	for i := range r.Experience {
		exp := &r.Experience[i]
		if exp.Current {
			exp.EndDate = Date{}
		}
		if exp.Achievements == nil {
			exp.Achievements = []string{}
		}
	}

	for i := range r.Projects {
		if r.Projects[i].Technologies == nil {
			r.Projects[i].Technologies = []string{}
		}
	}

	for i := range r.Skills {
		skill := &r.Skills[i]
		skill.Name = strings.TrimSpace(skill.Name)
		switch strings.ToLower(strings.TrimSpace(skill.Category)) {
		case CategoryLanguage:
			skill.Category = CategoryLanguage
		case CategorySoft:
			skill.Category = CategorySoft
		default:
			skill.Category = CategoryTechnical
		}
		skill.Level = strings.ToLower(strings.TrimSpace(skill.Level))
		if skill.Level == "" {
			skill.Level = DefaultSkillLevel
		}
	}
}

// IsEmpty reports whether nothing at all was extracted.
func (r *Resume) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.PersonalInfo == (PersonalInfo{}) &&
		strings.TrimSpace(r.Summary) == "" &&
		len(r.Education) == 0 &&
		len(r.Experience) == 0 &&
		len(r.Skills) == 0 &&
		len(r.Projects) == 0
}

// SkillNames returns the skill names in declaration order.
func (r *Resume) SkillNames() []string {
	names := make([]string, 0, len(r.Skills))
	for _, s := range r.Skills {
		names = append(names, s.Name)
	}
	return names
}

// Text concatenates summary, experience, skills and projects in that fixed order.
// It is the résumé side of similarity scoring and keyword extraction.
func (r *Resume) Text() string {
	parts := []string{r.Summary}
	for _, exp := range r.Experience {
		parts = append(parts, exp.Description)
		parts = append(parts, exp.Achievements...)
	}
	parts = append(parts, strings.Join(r.SkillNames(), " "))
	for _, p := range r.Projects {
		parts = append(parts, p.Description)
		parts = append(parts, strings.Join(p.Technologies, " "))
	}
	return strings.Join(parts, " ")
}
