package session

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pranavbafna586/MediMind/internal/domain"
	"github.com/pranavbafna586/MediMind/internal/domain/entity"
	"github.com/pranavbafna586/MediMind/pkg/logger"
)

// Request is one outstanding submission, created by Begin and settled by Finish
type Request struct {
	ID      string
	Flow    domain.Flow
	Message string // chat message, or analysis query
	Image   string // data URL, image flow only

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// Context returns the context the backend call runs under
func (r *Request) Context() context.Context { return r.ctx }

// Begin handles a submit intent. It validates the guard, renders the user's
// turn, clears the input, shows the pending placeholder and marks the
// session as submitting. The returned request must be passed to Execute and
// then Finish.
//
// Begin returns domain.ErrBusy while another request is outstanding and
// domain.ErrEmptySubmission when there is neither text nor an attachment;
// in both cases nothing changes.
func (s *Session) Begin(ctx context.Context) (*Request, error) {
	return s.begin(ctx, nil)
}

// begin is Begin with an optional draft that replaces the input once the
// gate is known to be open.
func (s *Session) begin(ctx context.Context, draft *string) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return nil, domain.ErrBusy
	}
	if draft != nil {
		s.input.SetText(*draft)
	}

	message := strings.TrimSpace(s.input.Text())
	att := s.attachments.Current()
	if message == "" && att == nil {
		return nil, domain.ErrEmptySubmission
	}

	req := &Request{ID: uuid.New().String()}
	if att != nil {
		if message == "" {
			message = domain.DefaultImageQuery
		}
		req.Flow = domain.FlowImage
		req.Image = att.DataURL
		s.transcript.Append(message, entity.RoleUser, att.DataURL)
	} else {
		req.Flow = domain.FlowText
		s.transcript.Append(message, entity.RoleUser, "")
	}
	req.Message = message

	s.input.Clear()
	s.transcript.ShowPending()

	ctx = domain.WithRequestID(ctx, req.ID)
	if s.opts.RequestTimeout > 0 {
		req.ctx, req.cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
	} else {
		req.ctx, req.cancel = context.WithCancel(ctx)
	}

	s.submitting = true
	s.inflight = req

	s.logger.Info("submission started", "request_id", req.ID, "flow", req.Flow)
	return req, nil
}

// Execute performs the backend call for req. It touches no session state and
// may run on any goroutine.
func (s *Session) Execute(req *Request) (string, error) {
	var (
		reply string
		err   error
	)
	switch req.Flow {
	case domain.FlowImage:
		reply, err = s.backend.AnalyzeImage(req.ctx, req.Image, req.Message)
	default:
		reply, err = s.backend.Chat(req.ctx, req.Message)
	}
	if err != nil {
		return "", domain.NewRequestFailedError(req.Flow, err)
	}
	return reply, nil
}

// Finish settles req: it removes the placeholder, appends the reply or the
// flow's apology, clears the attachment of an image flow and reopens the
// gate. Calling it twice for the same request has no further effect.
func (s *Session) Finish(req *Request, reply string, err error) {
	req.once.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.transcript.ClearPending()
		if err != nil {
			logger.WithError(s.logger, err).Error("submission failed", "request_id", req.ID, "flow", req.Flow)
			s.transcript.Append(req.Flow.Apology(), entity.RoleAssistant, "")
		} else {
			s.logger.Info("submission completed", "request_id", req.ID, "flow", req.Flow)
			s.transcript.Append(reply, entity.RoleAssistant, "")
		}

		if req.Flow == domain.FlowImage && (err == nil || !s.opts.KeepAttachmentOnFailure) {
			s.attachments.Clear()
		}

		req.cancel()
		if s.inflight == req {
			s.inflight = nil
		}
		s.submitting = false
	})
}

// Submit runs a whole submission and blocks until it settles. The returned
// error is the guard rejection or the request failure; a failed request has
// already been reported in the transcript.
func (s *Session) Submit(ctx context.Context) error {
	return s.run(s.Begin(ctx))
}

// SubmitText sets the draft to text and submits it. While busy it returns
// domain.ErrBusy and leaves the draft alone.
func (s *Session) SubmitText(ctx context.Context, text string) error {
	return s.run(s.begin(ctx, &text))
}

func (s *Session) run(req *Request, err error) error {
	if err != nil {
		return err
	}
	reply, err := s.Execute(req)
	s.Finish(req, reply, err)
	return err
}

// Cancel aborts the outstanding request, which then settles as a failure.
// Returns false when nothing is in flight.
func (s *Session) Cancel() bool {
	s.mu.Lock()
	req := s.inflight
	s.mu.Unlock()

	if req == nil {
		return false
	}
	s.logger.Info("submission cancelled", "request_id", req.ID)
	req.cancel()
	return true
}
