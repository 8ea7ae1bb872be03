package screener

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

const (
	RankPath = "/rank"

	jobDescriptionField = "job_description"
	resumeFileField     = "resume_file"
)

// SkillCoverage reports which required skills the resume covers.
type SkillCoverage struct {
	MatchedSkills      []string `json:"matched_skills"`
	MissingSkills      []string `json:"missing_skills"`
	CoveragePercentage float64  `json:"coverage_percentage"`
}

// RankResult is the full scoring payload returned by the service. The field
// names are fixed by the service contract; the result is accepted whole.
type RankResult struct {
	Filename           string        `json:"filename"`
	ResumeSkills       []string      `json:"resume_skills"`
	ExperienceYears    float64       `json:"experience_years"`
	JDSkills           []string      `json:"jd_skills"`
	SemanticSimilarity float64       `json:"semantic_similarity"`
	SkillCoverage      SkillCoverage `json:"skill_coverage"`
	FinalScore         float64       `json:"final_score"`
	Explanation        string        `json:"explanation"`
}

// Rank submits the job description and resume to the service and returns the
// scoring result. Exactly one request is made; there is no retry.
func (c *Client) Rank(ctx context.Context, jobDescription string, resume *ResumeFile) (*RankResult, error) {
	apiURLRank := fmt.Sprintf("%s%s", c.BaseURL, RankPath)

	fields := map[string]string{
		jobDescriptionField: jobDescription,
	}

	payload, err := c.postMultipart(ctx, apiURLRank, fields, resumeFileField, resume)
	if err != nil {
		return nil, err
	}

	var result *RankResult
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &result,
		TagName:  "json",
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	if err := decoder.Decode(payload); err != nil {
		return nil, fmt.Errorf("decoding rank result: %w", err)
	}

	return result, nil
}
