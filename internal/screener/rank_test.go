package screener

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const rankResponse = `{
	"filename": "resume.pdf",
	"resume_skills": ["Python"],
	"experience_years": 3,
	"jd_skills": ["Python", "SQL"],
	"semantic_similarity": 0.72,
	"skill_coverage": {
		"matched_skills": ["Python"],
		"missing_skills": ["SQL"],
		"coverage_percentage": 50
	},
	"final_score": 0.65,
	"explanation": "Partial match"
}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(zap.NewNop(), "")
	client.BaseURL = server.URL

	return client
}

func pdfResume() *ResumeFile {
	return &ResumeFile{
		Name:        "resume.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4 fake"),
	}
}

func TestRankSuccess(t *testing.T) {
	var (
		gotMethod   string
		gotPath     string
		gotJD       string
		gotFilename string
		gotPartType string
		gotFileBody string
	)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		gotJD = r.FormValue("job_description")

		file, header, err := r.FormFile("resume_file")
		if err != nil {
			t.Fatalf("reading resume_file part: %v", err)
		}
		defer file.Close()

		gotFilename = header.Filename
		gotPartType = header.Header.Get("Content-Type")

		body, err := io.ReadAll(file)
		if err != nil {
			t.Fatalf("reading resume_file body: %v", err)
		}
		gotFileBody = string(body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(rankResponse))
	})

	result, err := client.Rank(context.Background(), "Need Python and SQL", pdfResume())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/rank" {
		t.Fatalf("expected POST /rank, got %s %s", gotMethod, gotPath)
	}
	if gotJD != "Need Python and SQL" {
		t.Fatalf("unexpected job_description field: %q", gotJD)
	}
	if gotFilename != "resume.pdf" {
		t.Fatalf("unexpected filename: %q", gotFilename)
	}
	if gotPartType != "application/pdf" {
		t.Fatalf("expected the declared media type on the part, got %q", gotPartType)
	}
	if gotFileBody != "%PDF-1.4 fake" {
		t.Fatalf("resume bytes were not transmitted raw: %q", gotFileBody)
	}

	if result.Filename != "resume.pdf" {
		t.Fatalf("unexpected filename in result: %q", result.Filename)
	}
	if result.FinalScore != 0.65 {
		t.Fatalf("unexpected final score: %v", result.FinalScore)
	}
	if result.ExperienceYears != 3 {
		t.Fatalf("unexpected experience: %v", result.ExperienceYears)
	}
	if len(result.JDSkills) != 2 || result.JDSkills[0] != "Python" || result.JDSkills[1] != "SQL" {
		t.Fatalf("unexpected jd skills: %v", result.JDSkills)
	}
	if len(result.SkillCoverage.MatchedSkills) != 1 || result.SkillCoverage.MatchedSkills[0] != "Python" {
		t.Fatalf("unexpected matched skills: %v", result.SkillCoverage.MatchedSkills)
	}
	if len(result.SkillCoverage.MissingSkills) != 1 || result.SkillCoverage.MissingSkills[0] != "SQL" {
		t.Fatalf("unexpected missing skills: %v", result.SkillCoverage.MissingSkills)
	}
	if result.SkillCoverage.CoveragePercentage != 50 {
		t.Fatalf("unexpected coverage: %v", result.SkillCoverage.CoveragePercentage)
	}
	if result.Explanation != "Partial match" {
		t.Fatalf("unexpected explanation: %q", result.Explanation)
	}
}

func TestRankServiceErrorWithDetail(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "resume too large"}`))
	})

	_, err := client.Rank(context.Background(), "jd", pdfResume())
	if err == nil {
		t.Fatalf("expected an error")
	}

	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("expected a ServiceError, got %T: %v", err, err)
	}
	if serviceErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status code: %d", serviceErr.StatusCode)
	}
	if serviceErr.Detail != "resume too large" {
		t.Fatalf("unexpected detail: %q", serviceErr.Detail)
	}
	if serviceErr.Error() != "resume too large" {
		t.Fatalf("detail must be surfaced verbatim, got %q", serviceErr.Error())
	}
}

func TestRankServiceErrorWithoutDetail(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	_, err := client.Rank(context.Background(), "jd", pdfResume())

	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("expected a ServiceError, got %T: %v", err, err)
	}
	if serviceErr.Detail != "" {
		t.Fatalf("expected no detail, got %q", serviceErr.Detail)
	}
	if !strings.Contains(serviceErr.Error(), "500") {
		t.Fatalf("expected the status in the message, got %q", serviceErr.Error())
	}
}

func TestRankTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client := New(zap.NewNop(), "")
	client.BaseURL = server.URL
	// Refuse the connection.
	server.Close()

	_, err := client.Rank(context.Background(), "jd", pdfResume())
	if err == nil {
		t.Fatalf("expected an error")
	}

	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		t.Fatalf("a transport failure must not be a ServiceError: %v", err)
	}
}

func TestRankMalformedSuccessBody(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.Rank(context.Background(), "jd", pdfResume())
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "decoding") {
		t.Fatalf("expected a decode error, got %v", err)
	}
}

func TestRankSendsHeaders(t *testing.T) {
	var gotAuth, gotAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(rankResponse))
	}))
	defer server.Close()

	client := New(zap.NewNop(), "s3cret")
	client.BaseURL = server.URL

	if _, err := client.Rank(context.Background(), "jd", pdfResume()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer s3cret" {
		t.Fatalf("unexpected authorization header: %q", gotAuth)
	}
	if gotAgent != userAgent {
		t.Fatalf("unexpected user agent: %q", gotAgent)
	}
}

func TestRankOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	sawAuth := false

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawAuth = r.Header["Authorization"]
		w.Write([]byte(rankResponse))
	})

	if _, err := client.Rank(context.Background(), "jd", pdfResume()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sawAuth {
		t.Fatalf("expected no authorization header, got %q", gotAuth)
	}
}

func TestHealth(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/" {
			t.Fatalf("expected GET /, got %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"status": "ok", "message": "Resume Screener API is running!"}`))
	})

	status, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if status.Status != "ok" {
		t.Fatalf("unexpected status: %q", status.Status)
	}
	if status.Message != "Resume Screener API is running!" {
		t.Fatalf("unexpected message: %q", status.Message)
	}
}

func TestHealthServiceError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Health(context.Background())

	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("expected a ServiceError, got %T: %v", err, err)
	}
}
