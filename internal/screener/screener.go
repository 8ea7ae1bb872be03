package screener

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "http://localhost:8000"
	userAgent      = "resume-screener-cli"

	defaultTimeout = 30 * time.Second
)

// Client talks to the resume screening service.
type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	BaseURL    string
}

// New creates a screening service client. The token is optional and is sent
// as a bearer token only when non-empty.
func New(logger *zap.Logger, token string) *Client {
	return &Client{
		token:   token,
		BaseURL: defaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}
