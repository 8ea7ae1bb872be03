package submission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Aditya-Mahlawat/resume-screener/internal/screener"
	"github.com/Aditya-Mahlawat/resume-screener/internal/utils"

	"go.uber.org/zap"
)

// MissingInputMessage is shown when the form is submitted without both a job
// description and a resume file.
const MissingInputMessage = "Please provide both a job description and a resume file."

// ErrSubmissionInFlight is returned when a submission is attempted while a
// previous one is still awaiting its reply. Only one request may be
// outstanding at a time.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// Ranker performs the remote scoring call. *screener.Client implements it.
type Ranker interface {
	Rank(ctx context.Context, jobDescription string, resume *screener.ResumeFile) (*screener.RankResult, error)
}

// FormInput holds the user-entered form values. Resume is nil until a file
// was chosen; choosing again replaces it.
type FormInput struct {
	JobDescription string
	Resume         *screener.ResumeFile
}

// Complete reports whether both inputs are present.
func (f FormInput) Complete() bool {
	return strings.TrimSpace(f.JobDescription) != "" && f.Resume != nil
}

// Controller owns the submission state and is the only writer of it.
type Controller struct {
	ranker Ranker
	logger *zap.Logger

	mu    sync.Mutex
	state State
	gen   uint64
}

func NewController(ranker Ranker, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Controller{
		ranker: ranker,
		logger: logger,
		state:  Idle(),
	}
}

// State returns the current submission state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit runs one submission attempt to completion. All attempt outcomes,
// including validation failures, land in the controller state; the returned
// error is non-nil only when the attempt was rejected because another one is
// still in flight, in which case the state is left untouched.
func (c *Controller) Submit(ctx context.Context, input FormInput) error {
	c.mu.Lock()
	if c.state.phase == PhaseInFlight {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}

	if !input.Complete() {
		// No request is dispatched for an incomplete form, whatever the
		// previous state was.
		c.state = Failed(MissingInputMessage)
		c.mu.Unlock()
		c.logger.Debug("submission rejected", zap.String("reason", "incomplete form"))
		return nil
	}

	c.gen++
	gen := c.gen
	c.state = InFlight()
	c.mu.Unlock()

	c.logger.Debug("dispatching rank request",
		zap.String("resume", input.Resume.Name),
		zap.String("jd_preview", utils.TruncateForLog(input.JobDescription, 120)),
	)

	result, err := c.ranker.Rank(ctx, input.JobDescription, input.Resume)
	c.resolve(gen, result, err)

	return nil
}

// resolve reconciles a finished request back into state. Resolutions of
// superseded submissions are discarded so a stale reply can never overwrite
// a newer state.
func (c *Controller) resolve(gen uint64, result *screener.RankResult, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		c.logger.Debug("discarding stale submission resolution", zap.Uint64("generation", gen))
		return
	}

	if err != nil {
		c.state = Failed(failureMessage(err))
		c.logger.Debug("submission failed", zap.Error(err))
		return
	}

	c.state = Succeeded(result)
}

// failureMessage maps a rank error to the text shown to the user. A
// machine-readable service detail is surfaced verbatim; anything else gets a
// generic message naming the cause and the likely culprit.
func failureMessage(err error) string {
	var serviceErr *screener.ServiceError
	if errors.As(err, &serviceErr) && serviceErr.Detail != "" {
		return fmt.Sprintf("Error: %s", serviceErr.Detail)
	}

	return fmt.Sprintf("Could not reach the screening service (%v). Please make sure the backend is running.", err)
}
