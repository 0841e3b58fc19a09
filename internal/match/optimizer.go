package match

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/ai"
	"github.com/spigell/career-navigator/internal/logger"
	"github.com/spigell/career-navigator/internal/resume"
)

const (
	noGapParagraph   = "Your resume already highlights the key skills!"
	minSkillCount    = 5
	summarySkillsMax = 5
	boostSkillsMax   = 5
)

// BoostConfig is the generation config for the resume boost paragraph.
var BoostConfig = ai.GenerationConfig{
	Temperature:     0.7,
	MaxOutputTokens: 350,
	TopP:            0.9,
	TopK:            40,
	DisableThinking: true,
}

// Report is the outcome of optimizing a résumé for one job.
type Report struct {
	Score                float64  `json:"score"`
	Feedback             string   `json:"feedback"`
	Suggestions          []string `json:"suggestions"`
	OptimizedSummary     string   `json:"optimized_summary"`
	MissingSkills        []string `json:"missing_skills"`
	ResumeBoostParagraph string   `json:"resume_boost_paragraph"`
}

// Optimizer combines similarity, skill gap and generated copy into a Report.
type Optimizer struct {
	scorer    *Scorer
	gaps      *GapAnalyzer
	generator ai.Generator
	genCfg    ai.GenerationConfig
	logger    *zap.Logger
}

func NewOptimizer(scorer *Scorer, gaps *GapAnalyzer, generator ai.Generator, genCfg ai.GenerationConfig, log *zap.Logger) *Optimizer {
	if genCfg == (ai.GenerationConfig{}) {
		genCfg = BoostConfig
	}
	return &Optimizer{
		scorer:    scorer,
		gaps:      gaps,
		generator: generator,
		genCfg:    genCfg,
		logger:    logger.WithFields(log),
	}
}

// Optimize scores r against job. Scoring and paragraph generation have no fallback:
// their failures are returned wrapped in ai.ErrUnavailable.
func (o *Optimizer) Optimize(ctx context.Context, r *resume.Resume, job string) (*Report, error) {
	if r == nil {
		r = resume.New()
	}
	text := r.Text()

	similarity, err := o.scorer.Score(ctx, text, job)
	if err != nil {
		return nil, fmt.Errorf("optimize resume: %w", err)
	}

	missing, err := o.gaps.Analyze(text, job)
	if err != nil {
		return nil, fmt.Errorf("optimize resume: %w", err)
	}

	boost, err := o.boostParagraph(ctx, missing, job)
	if err != nil {
		return nil, fmt.Errorf("optimize resume: %w", err)
	}

	o.logger.Info("resume optimized",
		zap.Float64("score", similarity.Value),
		zap.String("feedback", similarity.Feedback),
		zap.Int("missing_skills", len(missing)),
	)

	return &Report{
		Score:                similarity.Value,
		Feedback:             similarity.Feedback,
		Suggestions:          Suggestions(r, missing),
		OptimizedSummary:     OptimizedSummary(r),
		MissingSkills:        missing,
		ResumeBoostParagraph: boost,
	}, nil
}

// Suggestions lists the generic improvements for r.
func Suggestions(r *resume.Resume, missing []string) []string {
	out := []string{}
	if len(missing) > 0 {
		out = append(out, "Add these skills: "+strings.Join(missing, ", "))
	}
	if strings.TrimSpace(r.Summary) == "" {
		out = append(out, "Add a professional summary.")
	}
	if len(r.Skills) < minSkillCount {
		out = append(out, "Include more relevant skills.")
	}
	return out
}

// OptimizedSummary keeps an existing summary or drafts one from skills and the
// first position held.
func OptimizedSummary(r *resume.Resume) string {
	if s := strings.TrimSpace(r.Summary); s != "" {
		return r.Summary
	}
	names := r.SkillNames()
	if len(names) > summarySkillsMax {
		names = names[:summarySkillsMax]
	}
	position := ""
	if len(r.Experience) > 0 {
		position = r.Experience[0].Position
	}
	return fmt.Sprintf("Experienced professional with skills in %s, seeking a role as %s.", strings.Join(names, ", "), position)
}

func (o *Optimizer) boostParagraph(ctx context.Context, missing []string, job string) (string, error) {
	if len(missing) == 0 {
		return noGapParagraph, nil
	}
	if o.generator == nil {
		return "", ai.Unavailable("boost paragraph", fmt.Errorf("no text generator configured"))
	}

	top := missing
	if len(top) > boostSkillsMax {
		top = top[:boostSkillsMax]
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Write a strong resume summary using these skills: %s. ", strings.Join(top, ", "))
	if strings.TrimSpace(job) != "" {
		fmt.Fprintf(&prompt, "Job Description: %s ", job)
	}
	prompt.WriteString("Avoid irrelevant technologies. Be concise and persuasive.")

	out, err := o.generator.Generate(ctx, prompt.String(), o.genCfg)
	if err != nil {
		return "", ai.Unavailable("boost paragraph", err)
	}
	return strings.TrimSpace(out), nil
}
