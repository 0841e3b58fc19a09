package resume

// SectionKind labels a block of résumé text.
type SectionKind string

const (
	SectionPersonalInfo SectionKind = "personal_info"
	SectionSummary      SectionKind = "summary"
	SectionEducation    SectionKind = "education"
	SectionExperience   SectionKind = "experience"
	SectionSkills       SectionKind = "skills"
	SectionProjects     SectionKind = "projects"
	SectionOther        SectionKind = "other"
)

// SectionMap maps a section kind to its text. Keys keep document order; a later
// section of the same kind replaces the earlier text.
type SectionMap struct {
	order []SectionKind
	text  map[SectionKind]string
}

func NewSectionMap() *SectionMap {
	return &SectionMap{text: make(map[SectionKind]string)}
}

// Set stores text for kind. A kind that is already present keeps its position.
func (m *SectionMap) Set(kind SectionKind, text string) {
	if _, ok := m.text[kind]; !ok {
		m.order = append(m.order, kind)
	}
	m.text[kind] = text
}

// Get returns the text for kind, or an empty string.
func (m *SectionMap) Get(kind SectionKind) string {
	if m == nil {
		return ""
	}
	return m.text[kind]
}

func (m *SectionMap) Has(kind SectionKind) bool {
	if m == nil {
		return false
	}
	_, ok := m.text[kind]
	return ok
}

// Kinds returns the section kinds in document order.
func (m *SectionMap) Kinds() []SectionKind {
	if m == nil {
		return nil
	}
	out := make([]SectionKind, len(m.order))
	copy(out, m.order)
	return out
}

func (m *SectionMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}
