package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/Aditya-Mahlawat/resume-screener/internal/screener"
	"github.com/Aditya-Mahlawat/resume-screener/internal/submission"
)

// Tier buckets the final score for display.
type Tier string

const (
	// TierStrong is a final score of 80% or above.
	TierStrong Tier = "strong match"
	// TierModerate is a final score of 60% or above.
	TierModerate Tier = "moderate match"
	// TierWeak is any non-zero score below 60%.
	TierWeak Tier = "weak match"
	// TierNone is a score of exactly zero.
	TierNone Tier = "no match"

	idlePlaceholder = "Provide a job description and a resume file to see a match report."
	busyLine        = "Scoring the resume..."
)

// ScorePercent converts a [0,1] score to the displayed whole percentage.
func ScorePercent(score float64) int {
	return int(math.Round(score * 100))
}

// TierFor returns the display tier for a [0,1] final score. The boundaries
// sit on the displayed percentage, so 0.8 and 0.6 land on the upper tier.
func TierFor(score float64) Tier {
	percent := ScorePercent(score)
	switch {
	case percent >= 80:
		return TierStrong
	case percent >= 60:
		return TierModerate
	case percent > 0:
		return TierWeak
	default:
		return TierNone
	}
}

// Render maps a submission state to its textual view. It is a pure function
// of the state and never mutates it.
func Render(state submission.State) string {
	switch state.Phase() {
	case submission.PhaseInFlight:
		return busyLine
	case submission.PhaseFailed:
		return fmt.Sprintf("Submission failed\n  %s", state.Message())
	case submission.PhaseSucceeded:
		return renderResult(state.Result())
	default:
		return idlePlaceholder
	}
}

func renderResult(result *screener.RankResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Match report for %s\n", result.Filename)
	fmt.Fprintf(&b, "  Final score: %d%% (%s)\n", ScorePercent(result.FinalScore), TierFor(result.FinalScore))
	fmt.Fprintf(&b, "  Semantic similarity: %.2f\n", result.SemanticSimilarity)
	fmt.Fprintf(&b, "  Experience: %.1f years\n", result.ExperienceYears)
	fmt.Fprintf(&b, "  Skill coverage: %s\n", coverageLine(result))
	fmt.Fprintf(&b, "  Matched skills: %s\n", skillList(result.SkillCoverage.MatchedSkills))
	fmt.Fprintf(&b, "  Missing skills: %s\n", skillList(result.SkillCoverage.MissingSkills))
	fmt.Fprintf(&b, "  %s", result.Explanation)

	return b.String()
}

// coverageLine shows the matched/required fraction next to the coverage
// value reported by the service. The fraction is suppressed when the job
// description yielded no required skills.
func coverageLine(result *screener.RankResult) string {
	required := len(result.JDSkills)
	if required == 0 {
		return fmt.Sprintf("%g%%", result.SkillCoverage.CoveragePercentage)
	}

	matched := len(result.SkillCoverage.MatchedSkills)
	return fmt.Sprintf("%d of %d required skills (%g%%)", matched, required, result.SkillCoverage.CoveragePercentage)
}

func skillList(skills []string) string {
	if len(skills) == 0 {
		return "none"
	}

	return strings.Join(skills, ", ")
}
