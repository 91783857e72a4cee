package hacks

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Domenick1991/hackportal/internal/domain"
	"github.com/Domenick1991/hackportal/internal/kafka"
)

const (
	StatusImportSucceeded = "Bulk hack import successful."
	StatusImportFailed    = "Bulk hack import failed."

	importLockKey = "lock:hacks:import"
)

// ImportItem is one incoming hack without an id.
type ImportItem struct {
	Title      string   `json:"title" yaml:"title" validate:"required"`
	DevpostURL string   `json:"devpostUrl" yaml:"devpostUrl" validate:"required"`
	Categories []string `json:"categories" yaml:"categories"`
	Floor      *int     `json:"floor,omitempty" yaml:"floor,omitempty"`
	Table      *string  `json:"table,omitempty" yaml:"table,omitempty"`
}

type ImportResult struct {
	Status string        `json:"status"`
	Hacks  []domain.Hack `json:"hacks"`
}

var validate = validator.New()

// ErrIDSpaceExhausted is returned when the batch would number past the
// largest representable id.
var ErrIDSpaceExhausted = errors.New("hack id space exhausted")

// AssignIDs numbers items in input order starting right after maxID, or at 0
// when the store is empty.
func AssignIDs(maxID int64, hasMax bool, items []ImportItem) []domain.Hack {
	next := int64(0)
	if hasMax {
		next = maxID + 1
	}

	hacks := make([]domain.Hack, len(items))
	for i, item := range items {
		categories := item.Categories
		if categories == nil {
			categories = []string{}
		}
		hacks[i] = domain.Hack{
			ID:         next + int64(i),
			Title:      item.Title,
			DevpostURL: item.DevpostURL,
			Categories: categories,
			Floor:      item.Floor,
			Table:      item.Table,
		}
	}
	return hacks
}

// Import assigns ids continuing from the current maximum and stores the batch.
// The repository reads the maximum and inserts under its own transaction lock;
// the locker additionally queues imports before they reach the database.
func (s *HackService) Import(ctx context.Context, credential string, items []ImportItem) (*ImportResult, error) {
	if !s.admins.IsAdmin(credential) {
		return nil, domain.AuthorizationError{Msg: "administrative credential required"}
	}
	if len(items) == 0 {
		return nil, domain.ValidationError{Field: "items", Msg: "must not be empty"}
	}
	for i := range items {
		if err := validate.Struct(items[i]); err != nil {
			return nil, domain.ValidationError{Field: "items[" + strconv.Itoa(i) + "]", Msg: err.Error(), Err: err}
		}
	}

	var imported []domain.Hack
	err := s.locker.WithLock(ctx, importLockKey, func(ctx context.Context) error {
		batch, err := s.repo.ImportBatch(ctx, func(maxID int64, hasMax bool) ([]domain.Hack, error) {
			if hasMax && maxID > math.MaxInt64-int64(len(items)) {
				return nil, domain.PersistenceError{Op: "assign hack ids", Err: ErrIDSpaceExhausted}
			}
			batch := AssignIDs(maxID, hasMax, items)
			s.logger.Debug("Assigned hack ids",
				zap.Int64("first_id", batch[0].ID),
				zap.Int64("last_id", batch[len(batch)-1].ID))
			return batch, nil
		})
		if err != nil {
			if domain.IsPersistence(err) {
				return err
			}
			return domain.PersistenceError{Op: "import hacks", Err: err}
		}
		imported = batch
		return nil
	})
	if err != nil {
		s.logger.Error("Hack import failed", zap.Int("items", len(items)), zap.Error(err))
		if domain.IsPersistence(err) {
			return nil, err
		}
		return nil, domain.PersistenceError{Op: "import lock", Err: err}
	}

	s.logger.Info("Hacks imported",
		zap.Int("count", len(imported)),
		zap.Int64("first_id", imported[0].ID),
		zap.Int64("last_id", imported[len(imported)-1].ID))

	if s.cache != nil {
		if err := s.cache.InvalidateHacks(ctx); err != nil {
			s.logger.Warn("Hack cache invalidation failed", zap.Error(err))
		}
	}
	if err := s.publishImported(ctx, imported); err != nil {
		s.logger.Warn("Failed to publish hacks_imported event", zap.Error(err))
	}

	return &ImportResult{Status: StatusImportSucceeded, Hacks: imported}, nil
}

func (s *HackService) publishImported(ctx context.Context, hacks []domain.Hack) error {
	if s.producer == nil || s.eventsTopic == "" {
		return nil
	}
	event := kafka.NewEvent(kafka.EventHacksImported)
	event.HackIDs = make([]int64, len(hacks))
	for i, h := range hacks {
		event.HackIDs[i] = h.ID
	}
	return s.producer.Publish(ctx, s.eventsTopic, fmt.Sprintf("hacks:%d", hacks[0].ID), event)
}
