package giveaway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	dg "github.com/nottherealepic/giveaway-bot/internal/domain/giveaway"
	"github.com/nottherealepic/giveaway-bot/internal/utils/random"
)

// Repository is the persistence port for the lifecycle engine.
type Repository interface {
	Create(ctx context.Context, g *dg.Giveaway) (int64, error)
	GetByID(ctx context.Context, id int64) (*dg.Giveaway, error)
	Join(ctx context.Context, giveawayID int64, userID string) (bool, error)
	Participants(ctx context.Context, giveawayID int64) ([]string, error)
	ListDue(ctx context.Context, now time.Time) ([]dg.Giveaway, error)
	Winners(ctx context.Context, giveawayID int64) ([]string, error)
	CloseAndRecordWinners(ctx context.Context, id int64, winners []string) (bool, error)
}

// Presenter renders lifecycle state into the announcement channel. It is the
// only boundary the engine has with the chat transport; implementations must
// report a deleted announcement as ErrAnnouncementNotFound.
type Presenter interface {
	PublishAnnouncement(ctx context.Context, g *dg.Giveaway) (messageID string, err error)
	AttachJoinButton(ctx context.Context, g *dg.Giveaway) error
	PublishOutcome(ctx context.Context, outcome *dg.DrawOutcome) error
}

// Service drives a giveaway through create, collect entries, draw, finalize.
type Service struct {
	repo      Repository
	presenter Presenter
	logger    zerolog.Logger
	now       func() time.Time
}

func NewService(repo Repository, presenter Presenter, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		presenter: presenter,
		logger:    logger.With().Str("component", "giveaway_service").Logger(),
		now:       time.Now,
	}
}

// CreateParams carries the arguments collected by the start command.
type CreateParams struct {
	Title           string
	Sponsor         string
	Prize           string
	DurationMinutes int
	WinnersCount    int
	HostID          string
	GuildID         string
	ChannelID       string
}

func (p CreateParams) validate() error {
	if p.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidParameters, p.DurationMinutes)
	}
	if p.WinnersCount < 1 {
		return fmt.Errorf("%w: winners count must be at least 1, got %d", ErrInvalidParameters, p.WinnersCount)
	}
	if strings.TrimSpace(p.Prize) == "" {
		return fmt.Errorf("%w: prize must not be empty", ErrInvalidParameters)
	}
	if p.ChannelID == "" {
		return fmt.Errorf("%w: target channel required", ErrInvalidParameters)
	}
	return nil
}

// Create publishes the announcement, persists the giveaway and attaches the
// join affordance keyed by the new id. The announcement is posted before the
// row exists; if the insert fails the announcement is orphaned and the error
// surfaces to the invoking command.
func (s *Service) Create(ctx context.Context, p CreateParams) (*dg.Giveaway, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	g := &dg.Giveaway{
		ChannelID:    p.ChannelID,
		GuildID:      p.GuildID,
		Title:        p.Title,
		Sponsor:      p.Sponsor,
		Prize:        p.Prize,
		WinnersCount: p.WinnersCount,
		HostID:       p.HostID,
		EndTime:      s.now().UTC().Add(time.Duration(p.DurationMinutes) * time.Minute),
	}

	messageID, err := s.presenter.PublishAnnouncement(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("failed to publish announcement: %w", err)
	}
	g.MessageID = messageID

	id, err := s.repo.Create(ctx, g)
	if err != nil {
		s.logger.Error().Err(err).
			Str("channel_id", g.ChannelID).
			Str("message_id", g.MessageID).
			Msg("giveaway insert failed, announcement orphaned")
		return nil, fmt.Errorf("failed to persist giveaway: %w", err)
	}
	g.ID = id

	// The button carries the giveaway id, so it can only be attached after
	// the insert. A failure here leaves an announcement nobody can join;
	// the giveaway itself is intact.
	if err := s.presenter.AttachJoinButton(ctx, g); err != nil {
		s.logger.Warn().Err(err).Int64("giveaway_id", id).Msg("failed to attach join button")
	}

	s.logger.Info().
		Int64("giveaway_id", id).
		Str("prize", g.Prize).
		Int("winners_count", g.WinnersCount).
		Time("end_time", g.EndTime).
		Msg("giveaway created")
	return g, nil
}

// Join records an entry. A repeat join by the same user is a no-op and is
// acknowledged identically to a first join. Joins are accepted until the
// draw actually closes the giveaway, even past the deadline.
func (s *Service) Join(ctx context.Context, giveawayID int64, userID string) (dg.JoinResult, error) {
	first, err := s.repo.Join(ctx, giveawayID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to join giveaway %d: %w", giveawayID, err)
	}
	if !first {
		return dg.AlreadyJoined, nil
	}
	s.logger.Debug().Int64("giveaway_id", giveawayID).Str("user_id", userID).Msg("participant joined")
	return dg.Joined, nil
}

// Draw closes a giveaway and selects winners. It is safe to call repeatedly
// and concurrently: the close is a locked conditional update, and once the
// giveaway is ended every further call returns the recorded winner list.
func (s *Service) Draw(ctx context.Context, giveawayID int64) (*dg.DrawOutcome, error) {
	g, err := s.repo.GetByID(ctx, giveawayID)
	if err != nil {
		return nil, fmt.Errorf("failed to load giveaway %d: %w", giveawayID, err)
	}
	if g == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, giveawayID)
	}
	if g.Ended {
		return s.recordedOutcome(ctx, g)
	}

	participants, err := s.repo.Participants(ctx, giveawayID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants for giveaway %d: %w", giveawayID, err)
	}

	outcome := &dg.DrawOutcome{Giveaway: g}
	if len(participants) < g.WinnersCount {
		outcome.Insufficient = true
	} else {
		winners, err := random.Sample(participants, g.WinnersCount)
		if err != nil {
			return nil, fmt.Errorf("failed to draw winners for giveaway %d: %w", giveawayID, err)
		}
		outcome.Winners = winners
	}

	closed, err := s.repo.CloseAndRecordWinners(ctx, giveawayID, outcome.Winners)
	if err != nil {
		return nil, fmt.Errorf("failed to close giveaway %d: %w", giveawayID, err)
	}
	if !closed {
		// Lost the race to another draw; report what it recorded.
		return s.recordedOutcome(ctx, g)
	}
	g.Ended = true

	// The close is committed; the announcement rewrite is best-effort. A
	// deleted announcement must not fail the draw.
	if err := s.presenter.PublishOutcome(ctx, outcome); err != nil {
		if errors.Is(err, ErrAnnouncementNotFound) {
			s.logger.Warn().Int64("giveaway_id", giveawayID).Msg("announcement gone, outcome not rendered")
		} else {
			s.logger.Error().Err(err).Int64("giveaway_id", giveawayID).Msg("failed to publish outcome")
		}
	}

	s.logger.Info().
		Int64("giveaway_id", giveawayID).
		Int("participants", len(participants)).
		Int("winners", len(outcome.Winners)).
		Bool("insufficient", outcome.Insufficient).
		Msg("giveaway drawn")
	return outcome, nil
}

func (s *Service) recordedOutcome(ctx context.Context, g *dg.Giveaway) (*dg.DrawOutcome, error) {
	winners, err := s.repo.Winners(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load winners for giveaway %d: %w", g.ID, err)
	}
	g.Ended = true
	return &dg.DrawOutcome{
		Giveaway:     g,
		Winners:      winners,
		Insufficient: len(winners) == 0,
		AlreadyEnded: true,
	}, nil
}
