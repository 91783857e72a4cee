package hacks

import (
	"context"
	"crypto/subtle"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Domenick1991/hackportal/internal/domain"
	"github.com/Domenick1991/hackportal/internal/repository"
)

type HackUseCase interface {
	List(ctx context.Context) ([]domain.Hack, error)
	GetByID(ctx context.Context, id int64) (*domain.Hack, error)
	Import(ctx context.Context, credential string, items []ImportItem) (*ImportResult, error)
}

type Cache interface {
	GetHacks(ctx context.Context) ([]domain.Hack, error)
	SetHacks(ctx context.Context, hacks []domain.Hack) error
	InvalidateHacks(ctx context.Context) error
}

// Locker runs fn with exclusive ownership of key.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type HackService struct {
	repo        repository.HackRepository
	admins      CredentialSet
	cache       Cache
	locker      Locker
	producer    Producer
	eventsTopic string
	logger      *zap.Logger
}

type HackServiceOption func(*HackService)

func WithCache(cache Cache) HackServiceOption {
	return func(s *HackService) {
		s.cache = cache
	}
}

// WithLocker replaces the in-process import lock, e.g. with a Redis lock
// shared by several replicas.
func WithLocker(locker Locker) HackServiceOption {
	return func(s *HackService) {
		s.locker = locker
	}
}

func WithEvents(producer Producer, topic string) HackServiceOption {
	return func(s *HackService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func NewHackService(repo repository.HackRepository, admins CredentialSet, logger *zap.Logger, opts ...HackServiceOption) *HackService {
	service := &HackService{
		repo:   repo,
		admins: admins,
		locker: &localLocker{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *HackService) List(ctx context.Context) ([]domain.Hack, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetHacks(ctx); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.logger.Warn("Hack cache read failed", zap.Error(err))
		}
	}

	hacks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetHacks(ctx, hacks); err != nil {
			s.logger.Warn("Hack cache write failed", zap.Error(err))
		}
	}
	return hacks, nil
}

func (s *HackService) GetByID(ctx context.Context, id int64) (*domain.Hack, error) {
	return s.repo.GetByID(ctx, id)
}

// CredentialSet is the set of credentials accepted as administrative. Entries
// may be stored in plain text or as bcrypt hashes.
type CredentialSet struct {
	plain  [][]byte
	hashed [][]byte
}

func NewCredentialSet(credentials []string) CredentialSet {
	var set CredentialSet
	for _, c := range credentials {
		switch {
		case c == "":
		case isBcryptHash(c):
			set.hashed = append(set.hashed, []byte(c))
		default:
			set.plain = append(set.plain, []byte(c))
		}
	}
	return set
}

func (c CredentialSet) IsAdmin(credential string) bool {
	if credential == "" {
		return false
	}
	candidate := []byte(credential)
	match := 0
	for _, known := range c.plain {
		match |= subtle.ConstantTimeCompare(known, candidate)
	}
	if match == 1 {
		return true
	}
	for _, hash := range c.hashed {
		if bcrypt.CompareHashAndPassword(hash, candidate) == nil {
			return true
		}
	}
	return false
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

type localLocker struct {
	mu sync.Mutex
}

func (l *localLocker) WithLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(ctx)
}

var _ HackUseCase = (*HackService)(nil)
