package match

import (
	"fmt"

	"github.com/spigell/career-navigator/internal/skills"
)

// DefaultSkillThreshold is the inclusive ratio at which two skills count as the same.
const DefaultSkillThreshold = 85.0

type keywordExtractor interface {
	Keywords(text string) ([]string, error)
}

// GapAnalyzer finds job skills the résumé does not mention.
type GapAnalyzer struct {
	extractor  keywordExtractor
	normalizer *skills.Normalizer
	threshold  float64
}

func NewGapAnalyzer(extractor keywordExtractor, normalizer *skills.Normalizer, threshold float64) *GapAnalyzer {
	if normalizer == nil {
		normalizer = skills.NewNormalizer(nil, 0)
	}
	if threshold <= 0 {
		threshold = DefaultSkillThreshold
	}
	return &GapAnalyzer{extractor: extractor, normalizer: normalizer, threshold: threshold}
}

// SkillSet extracts keywords from text and normalizes them, keeping first-seen order.
func (g *GapAnalyzer) SkillSet(text string) ([]string, error) {
	keywords, err := g.extractor.Keywords(text)
	if err != nil {
		return nil, fmt.Errorf("build skill set: %w", err)
	}

	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		canonical := g.normalizer.Normalize(kw)
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	return out, nil
}

// Missing returns the job skills, in order, that no résumé skill matches.
func (g *GapAnalyzer) Missing(resumeSkills, jobSkills []string) []string {
	missing := []string{}
	for _, job := range jobSkills {
		found := false
		for _, have := range resumeSkills {
			if skills.Ratio(job, have) >= g.threshold {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, job)
		}
	}
	return missing
}

// Analyze builds both skill sets and returns the gap.
func (g *GapAnalyzer) Analyze(resumeText, jobText string) ([]string, error) {
	have, err := g.SkillSet(resumeText)
	if err != nil {
		return nil, err
	}
	want, err := g.SkillSet(jobText)
	if err != nil {
		return nil, err
	}
	return g.Missing(have, want), nil
}
