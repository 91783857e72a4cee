package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Domenick1991/hackportal/internal/domain"
)

type ParticipantRepository interface {
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	SaveRSVP(ctx context.Context, id string, accepted bool) error
	ClearRSVP(ctx context.Context, id string) error
}

type PGParticipantRepository struct {
	db *pgxpool.Pool
}

func NewParticipantRepository(db *pgxpool.Pool) ParticipantRepository {
	return &PGParticipantRepository{db: db}
}

// profileRow mirrors the nullable offer columns of the participants table.
type profileRow struct {
	ID          string
	Email       string
	Admission   string
	Status      string
	OfferType   *string
	OfferAmount *string
	RouteID     *string
	Deadline    *time.Time
	RSVP        *bool
	UpdatedAt   time.Time
}

func (p profileRow) toDomain() (*domain.Profile, error) {
	profile := &domain.Profile{
		ID:                   p.ID,
		Email:                p.Email,
		Admission:            domain.AdmissionState(p.Admission),
		TransportationStatus: domain.TransportationStatus(p.Status),
		UpdatedAt:            p.UpdatedAt,
	}

	if (p.OfferType == nil) != (p.Deadline == nil) {
		return nil, fmt.Errorf("participant %s has an offer type without a deadline or a deadline without an offer type", p.ID)
	}

	if p.OfferType != nil {
		offer := &domain.TransportationOffer{
			Type:     domain.OfferType(*p.OfferType),
			Deadline: p.Deadline.UTC(),
		}
		if p.OfferAmount != nil {
			amount, err := decimal.NewFromString(*p.OfferAmount)
			if err != nil {
				return nil, fmt.Errorf("invalid offer amount for participant %s: %w", p.ID, err)
			}
			offer.Amount = amount
		}
		if p.RouteID != nil {
			offer.RouteID = *p.RouteID
		}
		profile.Offer = offer
	}

	if p.RSVP != nil {
		profile.RSVP = &domain.RSVP{Accepted: *p.RSVP}
	}
	return profile, nil
}

func (r *PGParticipantRepository) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT id, email, admission_state, transportation_status,
		offer_type, offer_amount::text, offer_route_id, offer_deadline, rsvp_accepted, updated_at
		FROM participants WHERE id=$1`, id)

	var p profileRow
	if err := row.Scan(&p.ID, &p.Email, &p.Admission, &p.Status, &p.OfferType, &p.OfferAmount, &p.RouteID, &p.Deadline, &p.RSVP, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "participant", Err: err}
		}
		return nil, fmt.Errorf("failed to load participant %s: %w", id, err)
	}
	return p.toDomain()
}

func (r *PGParticipantRepository) SaveRSVP(ctx context.Context, id string, accepted bool) error {
	return r.setRSVP(ctx, id, &accepted)
}

func (r *PGParticipantRepository) ClearRSVP(ctx context.Context, id string) error {
	return r.setRSVP(ctx, id, nil)
}

func (r *PGParticipantRepository) setRSVP(ctx context.Context, id string, accepted *bool) error {
	res, err := r.db.Exec(ctx, `UPDATE participants SET rsvp_accepted=$1, updated_at=now() WHERE id=$2`, accepted, id)
	if err != nil {
		return fmt.Errorf("failed to update rsvp for participant %s: %w", id, err)
	}
	if res.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: "participant"}
	}
	return nil
}

var _ ParticipantRepository = (*PGParticipantRepository)(nil)
