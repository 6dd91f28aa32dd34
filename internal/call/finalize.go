package call

import (
	"context"

	"go.uber.org/zap"

	"intervai/internal/models"
)

// finalize runs once per session after the transition into Finished. It never returns an error:
// every failure ends as a home-view outcome.
func (c *Controller) finalize(transcript []models.TranscriptMessage) {
	defer close(c.done)

	ctx := context.Background()
	outcome := &models.Outcome{Destination: HomeDestination}
	defer func() {
		c.mu.Lock()
		c.outcome = outcome
		c.mu.Unlock()
		c.logger.Info("session finalized",
			zap.String("destination", outcome.Destination),
			zap.String("interview_id", outcome.InterviewID),
			zap.String("feedback_id", outcome.FeedbackID))
	}()

	// anonymous sessions are not persisted and get no feedback
	if c.opts.UserID == "" {
		c.logger.Warn("no user identity on finished session, skipping persistence")
		return
	}

	interviewID := c.saveInterview(ctx, transcript)
	outcome.InterviewID = interviewID

	if c.opts.Mode == models.SessionModeGenerate {
		return
	}
	if interviewID == "" {
		c.logger.Warn("no interview to attach feedback to")
		return
	}

	result := c.deps.Feedback.CreateFeedback(ctx, models.CreateFeedbackParams{
		InterviewID: interviewID,
		UserID:      c.opts.UserID,
		Transcript:  transcript,
		FeedbackID:  c.opts.FeedbackID,
	})
	if !result.Success || result.FeedbackID == "" {
		c.logger.Error("error saving feedback", zap.String("interview_id", interviewID))
		return
	}
	outcome.FeedbackID = result.FeedbackID
	outcome.Destination = FeedbackDestination(interviewID)
}

// saveInterview finalizes the session's existing interview, or creates one for free-form
// sessions. It returns the interview the session belongs to, which may be "".
func (c *Controller) saveInterview(ctx context.Context, transcript []models.TranscriptMessage) string {
	if len(transcript) == 0 {
		c.logger.Warn("no transcript messages to save the interview from")
		return c.opts.InterviewID
	}

	if c.opts.InterviewID != "" {
		if err := c.deps.Interviews.FinalizeInterview(ctx, c.opts.InterviewID); err != nil {
			c.logger.Error("failed to finalize interview", zap.String("interview_id", c.opts.InterviewID), zap.Error(err))
			return c.opts.InterviewID
		}
		c.notify(ctx, c.opts.InterviewID, false)
		return c.opts.InterviewID
	}

	interview := c.defaultInterview()
	details, err := c.deps.Extractor.ExtractDetails(ctx, transcript)
	if err != nil || details == nil {
		c.logger.Warn("interview detail extraction failed, saving default interview", zap.Error(err))
	} else {
		interview.Role = details.Role
		interview.Type = details.Type
		interview.Techstack = details.Techstack
	}

	id, err := c.deps.Interviews.CreateInterview(ctx, interview)
	if err != nil {
		c.logger.Error("interview creation failed", zap.Error(err))
		return ""
	}
	c.logger.Info("interview saved", zap.String("interview_id", id))
	c.notify(ctx, id, true)
	return id
}

// defaultInterview prefers the caller-supplied profile and falls back to the fixed defaults.
func (c *Controller) defaultInterview() *models.Interview {
	p := c.opts.Profile
	interview := &models.Interview{
		UserID:    c.opts.UserID,
		Role:      p.Role,
		Type:      p.Type,
		Techstack: p.Techstack,
		Questions: []string{},
		Finalized: true,
	}
	if interview.Role == "" {
		interview.Role = models.DefaultRole
	}
	if interview.Type == "" {
		interview.Type = models.DefaultInterviewType
	}
	if len(interview.Techstack) == 0 {
		interview.Techstack = models.DefaultTechstack()
	}
	return interview
}

func (c *Controller) notify(ctx context.Context, interviewID string, created bool) {
	if c.deps.Notifier == nil {
		return
	}
	err := c.deps.Notifier.InterviewFinalized(ctx, models.InterviewFinalizedEvent{
		InterviewID: interviewID,
		UserID:      c.opts.UserID,
		Created:     created,
	})
	if err != nil {
		c.logger.Warn("failed to publish interview finalized event", zap.Error(err))
	}
}
