// Package digest implements the inbox digest pipeline: fetch unread mail,
// classify each message, aggregate a report, dispatch it.
package digest

import (
	"context"
	"io"
	"time"

	"digest_worker/config"
	"digest_worker/core/domain"
	"digest_worker/core/port/in"
	"digest_worker/core/port/out"
	"digest_worker/pkg/apperr"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const reportSubject = "Email Summary"

// Service runs the digest pipeline. One Run is a single sequential pass;
// nothing is shared across runs and nothing is persisted.
type Service struct {
	tokens     out.TokenProvider
	mail       out.MailProvider
	classifier out.EmailClassifier
	cfg        *config.Config
	output     io.Writer
	log        zerolog.Logger
	now        func() time.Time
}

func NewService(
	tokens out.TokenProvider,
	mail out.MailProvider,
	classifier out.EmailClassifier,
	cfg *config.Config,
	output io.Writer,
	log zerolog.Logger,
) *Service {
	return &Service{
		tokens:     tokens,
		mail:       mail,
		classifier: classifier,
		cfg:        cfg,
		output:     output,
		log:        log,
		now:        time.Now,
	}
}

// Run executes one digest pass. Auth and fetch failures abort the run;
// per-email classification failures and dispatch failures do not.
func (s *Service) Run(ctx context.Context) (*in.RunOutcome, error) {
	runID := uuid.NewString()
	log := s.log.With().Str("run_id", runID).Logger()
	outcome := &in.RunOutcome{RunID: runID}

	token, err := s.tokens.Acquire(ctx)
	if err != nil {
		log.Error().Err(err).Msg("token acquisition failed")
		return nil, err
	}

	emails, err := s.mail.ListUnread(ctx, token, s.cfg.TargetMailbox)
	if err != nil {
		ferr := apperr.FetchFailed(err)
		log.Error().Err(ferr).Str("mailbox", s.cfg.TargetMailbox).Msg("unread listing failed")
		return nil, ferr
	}

	outcome.Fetched = len(emails)
	if len(emails) == 0 {
		outcome.NothingToDo = true
		log.Info().Msg("no unread emails, nothing to do")
		return outcome, nil
	}

	log.Info().Int("count", len(emails)).Msg("classifying unread emails")

	// Strictly one at a time, in fetch order, so the final report
	// ordering matches the input order.
	pairs := make([]domain.ClassifiedEmail, 0, len(emails))
	for _, email := range emails {
		pair := domain.ClassifiedEmail{Email: email}

		classification, err := s.classifier.Classify(ctx, email.Subject, email.BodyText)
		if err != nil {
			log.Warn().Err(apperr.ClassifyFailed(email.ID, err)).Msg("email left unclassified")
		} else {
			pair.Classification = classification
			outcome.Classified++
		}
		pairs = append(pairs, pair)

		// Dormant by default: the same unread email is summarized every
		// run until someone marks it read. Best-effort when enabled.
		if s.cfg.MarkAsRead {
			if err := s.mail.MarkRead(ctx, token, s.cfg.TargetMailbox, email.ID); err != nil {
				log.Warn().Err(err).Str("email_id", email.ID).Msg("failed to mark email read")
			}
		}
	}

	report := domain.BuildReport(pairs, s.now())
	rendered := report.Render()

	if dest := s.cfg.SummaryDestination; dest.Configured() {
		if err := s.mail.Send(ctx, token, s.cfg.SenderMailbox, dest.Address(), reportSubject, rendered); err != nil {
			// Classification work is not lost; the run still counts as processed.
			log.Warn().Err(apperr.SendFailed(err)).Str("recipient", dest.Address()).Msg("report dispatch failed")
		} else {
			outcome.Dispatched = true
			log.Info().Str("recipient", dest.Address()).Msg("report emailed")
		}
	} else {
		if _, err := io.WriteString(s.output, rendered); err != nil {
			log.Warn().Err(apperr.SendFailed(err)).Msg("report write failed")
		}
	}

	log.Info().
		Int("fetched", outcome.Fetched).
		Int("classified", outcome.Classified).
		Bool("dispatched", outcome.Dispatched).
		Msg("digest run complete")

	return outcome, nil
}

var _ in.DigestService = (*Service)(nil)
