package fields

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/spigell/career-navigator/internal/resume"
)

var (
	skillSplitRe = regexp.MustCompile(`[,\n;|•·]`)
	skillLabelRe = regexp.MustCompile(`^[A-Za-z][A-Za-z /&\-]{0,40}:\s*`)
	skillLevelRe = regexp.MustCompile(`\s*(?:\(([^)]*)\)|\s-\s(\w+))\s*$`)
)

var humanLanguages = map[string]bool{
	"english": true, "spanish": true, "french": true, "german": true, "italian": true,
	"portuguese": true, "russian": true, "ukrainian": true, "polish": true, "dutch": true,
	"swedish": true, "norwegian": true, "danish": true, "finnish": true, "greek": true,
	"turkish": true, "arabic": true, "hebrew": true, "persian": true, "hindi": true,
	"bengali": true, "urdu": true, "tamil": true, "telugu": true, "marathi": true,
	"punjabi": true, "gujarati": true, "kannada": true, "malayalam": true, "mandarin": true,
	"cantonese": true, "chinese": true, "japanese": true, "korean": true, "vietnamese": true,
	"thai": true, "indonesian": true, "malay": true, "swahili": true,
}

var softSkills = []string{
	"communication",
	"leadership",
	"teamwork",
	"team player",
	"collaboration",
	"problem solving",
	"problem-solving",
	"critical thinking",
	"time management",
	"adaptability",
	"creativity",
	"mentoring",
	"public speaking",
	"negotiation",
	"presentation",
	"interpersonal",
	"attention to detail",
	"work ethic",
	"decision making",
	"conflict resolution",
	"emotional intelligence",
	"self-motivated",
}

var levelWords = map[string]string{
	"beginner":       "beginner",
	"basic":          "beginner",
	"elementary":     "beginner",
	"novice":         "beginner",
	"intermediate":   "intermediate",
	"conversational": "intermediate",
	"working":        "intermediate",
	"advanced":       "expert",
	"expert":         "expert",
	"proficient":     "expert",
	"fluent":         "expert",
	"native":         "expert",
}

// ParseSkills splits the section on commas and newlines, drops "Label:" prefixes and
// classifies each name. Duplicates are removed case-insensitively.
func ParseSkills(text string) []resume.Skill {
	out := []resume.Skill{}
	seen := make(map[string]bool)

	for _, raw := range skillSplitRe.Split(text, -1) {
		token := strings.TrimSpace(raw)
		token, _ = cutBullet(token)
		token = skillLabelRe.ReplaceAllString(token, "")

		level := resume.DefaultSkillLevel
		if m := skillLevelRe.FindStringSubmatch(token); m != nil {
			if l, ok := levelWords[strings.ToLower(strings.TrimSpace(m[1]+m[2]))]; ok {
				level = l
				token = token[:len(token)-len(m[0])]
			}
		}

		token = strings.Trim(strings.TrimSpace(token), ".")
		if !hasAlnum(token) || len(token) > 60 {
			continue
		}
		key := strings.ToLower(token)
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, resume.Skill{Name: token, Category: ClassifySkill(token), Level: level})
	}

	return out
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// ClassifySkill returns the category for a skill name, technical unless a keyword
// list says otherwise.
func ClassifySkill(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if humanLanguages[lower] {
		return resume.CategoryLanguage
	}
	for _, soft := range softSkills {
		if strings.Contains(lower, soft) {
			return resume.CategorySoft
		}
	}
	return resume.CategoryTechnical
}
