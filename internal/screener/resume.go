package screener

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Media types the screening service accepts, keyed by file extension.
var resumeMediaTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ResumeFile is a user-selected resume held in memory until submission.
type ResumeFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// LoadResumeFile reads a resume from disk. Only .pdf and .docx files are
// accepted, mirroring the file types the service can parse.
func LoadResumeFile(path string) (*ResumeFile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("resume file path is required")
	}

	ext := strings.ToLower(filepath.Ext(path))
	mediaType, ok := resumeMediaTypes[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported resume file type %q: expected .pdf or .docx", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume file: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("resume file %q is empty", path)
	}

	return &ResumeFile{
		Name:        filepath.Base(path),
		ContentType: mediaType,
		Data:        data,
	}, nil
}
