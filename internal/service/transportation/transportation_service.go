package transportation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Domenick1991/hackportal/internal/domain"
	"github.com/Domenick1991/hackportal/internal/kafka"
	"github.com/Domenick1991/hackportal/internal/repository"
)

type TransportationUseCase interface {
	Outcome(ctx context.Context, participantID string) (*Outcome, error)
	RecordRSVP(ctx context.Context, participantID string, accepted bool) (*Outcome, error)
	CancelRSVP(ctx context.Context, participantID string) (*Outcome, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type TransportationService struct {
	participants repository.ParticipantRepository
	routes       domain.BusRouteTable
	producer     Producer
	eventsTopic  string
	now          func() time.Time
	logger       *zap.Logger
}

type TransportationServiceOption func(*TransportationService)

func WithEvents(producer Producer, topic string) TransportationServiceOption {
	return func(s *TransportationService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func WithClock(now func() time.Time) TransportationServiceOption {
	return func(s *TransportationService) {
		s.now = now
	}
}

func NewTransportationService(participants repository.ParticipantRepository, routes domain.BusRouteTable, logger *zap.Logger, opts ...TransportationServiceOption) *TransportationService {
	service := &TransportationService{
		participants: participants,
		routes:       routes,
		now:          time.Now,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *TransportationService) Outcome(ctx context.Context, participantID string) (*Outcome, error) {
	profile, err := s.participants.GetProfile(ctx, participantID)
	if err != nil {
		return nil, err
	}
	out := s.resolve(profile)
	return &out, nil
}

// RecordRSVP stores the participant's answer to a bus placement. It is only
// accepted while the page shows the bus offer.
func (s *TransportationService) RecordRSVP(ctx context.Context, participantID string, accepted bool) (*Outcome, error) {
	profile, err := s.participants.GetProfile(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if out := s.resolve(profile); out.Kind != OutcomeBusOffer {
		return nil, domain.ValidationError{Field: "rsvp", Msg: "no bus placement is open for this participant"}
	}

	if err := s.participants.SaveRSVP(ctx, participantID, accepted); err != nil {
		return nil, err
	}
	profile.RSVP = &domain.RSVP{Accepted: accepted}

	s.publish(ctx, kafka.EventRSVPRecorded, profile, &accepted)
	out := s.resolve(profile)
	return &out, nil
}

func (s *TransportationService) CancelRSVP(ctx context.Context, participantID string) (*Outcome, error) {
	profile, err := s.participants.GetProfile(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if profile.RSVP == nil {
		out := s.resolve(profile)
		return &out, nil
	}
	if out := s.resolve(profile); out.Kind != OutcomeBusOffer {
		return nil, domain.ValidationError{Field: "rsvp", Msg: "no bus placement is open for this participant"}
	}

	if err := s.participants.ClearRSVP(ctx, participantID); err != nil {
		return nil, err
	}
	profile.RSVP = nil

	s.publish(ctx, kafka.EventRSVPCancelled, profile, nil)
	out := s.resolve(profile)
	return &out, nil
}

func (s *TransportationService) resolve(profile *domain.Profile) Outcome {
	out := Resolve(Input{
		Admission: profile.Admission,
		Offer:     profile.Offer,
		Status:    profile.TransportationStatus,
		RSVP:      profile.RSVP,
		Now:       s.now(),
	}, s.routes)
	if out.Diagnostic != "" {
		s.logger.Warn("Unrecognized transportation input",
			zap.String("participant_id", profile.ID),
			zap.String("diagnostic", out.Diagnostic))
	}
	return out
}

func (s *TransportationService) publish(ctx context.Context, eventType string, profile *domain.Profile, accepted *bool) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.NewEvent(eventType)
	event.ParticipantID = profile.ID
	event.Email = profile.Email
	event.Accepted = accepted
	if err := s.producer.Publish(ctx, s.eventsTopic, profile.ID, event); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("type", eventType), zap.String("participant_id", profile.ID), zap.Error(err))
	}
}

var _ TransportationUseCase = (*TransportationService)(nil)
