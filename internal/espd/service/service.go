package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/espd/espd-web/backend/go-services/internal/cache"
	"github.com/espd/espd-web/backend/go-services/internal/espd"
	"github.com/espd/espd-web/backend/go-services/internal/espd/repository"
	"github.com/espd/espd-web/backend/go-services/pkg/logger"
	"github.com/espd/espd-web/backend/go-services/pkg/metrics"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidCriterion = errors.New("invalid criterion payload")
)

var log = logger.For("espd-service")

// Service defines the ESPD document operations used by the handler layer.
type Service interface {
	Create(ctx context.Context, d *espd.Document) (string, error)
	Get(ctx context.Context, id string) (*espd.Document, error)
	List(ctx context.Context) ([]*espd.Document, error)
	Update(ctx context.Context, d *espd.Document) error
	Delete(ctx context.Context, id string) error

	Summary(ctx context.Context, id string) (espd.Summary, error)
	Apply(ctx context.Context, id string, sweep espd.Sweep) (*espd.Document, espd.SweepReport, error)
	ReadCriterion(ctx context.Context, id, field string) (espd.Criterion, error)
	WriteCriterion(ctx context.Context, id, field string, raw []byte) (espd.Criterion, error)
}

// NewMemoryService returns a Service backed by the in-memory repository and no cache.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo(), cache.Noop{}, 0)
}

// New returns a Service over repo. Reads go through c for ttl; every
// mutation invalidates the cached copy.
func New(repo repository.Repository, c cache.Cache, ttl time.Duration) Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &documentService{repo: repo, cache: c, ttl: ttl, gens: map[string]uint64{}}
}

// documentService drops a cache fill that raced with an invalidation in the
// same process. Writers on other replicas are only bounded by the cache TTL.
type documentService struct {
	repo  repository.Repository
	cache cache.Cache
	ttl   time.Duration

	mu   sync.Mutex
	gens map[string]uint64 // bumped on every invalidation
}

func (s *documentService) generation(id string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[id]
}

func translate(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *documentService) Create(ctx context.Context, d *espd.Document) (string, error) {
	return s.repo.Create(ctx, d)
}

func (s *documentService) Get(ctx context.Context, id string) (*espd.Document, error) {
	key := cache.DocumentKey(id)
	b, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		log.Warnf("cache get %s: %v", key, err)
	case ok:
		var d espd.Document
		if err := json.Unmarshal(b, &d); err == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return &d, nil
		}
		log.Warnf("dropping undecodable cache entry %s", key)
		_ = s.cache.Delete(ctx, key)
	default:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	gen := s.generation(id)
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if b, err := json.Marshal(d); err == nil {
		if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
			log.Warnf("cache set %s: %v", key, err)
		}
		if s.generation(id) != gen {
			_ = s.cache.Delete(ctx, key)
		}
	}
	return d, nil
}

func (s *documentService) List(ctx context.Context) ([]*espd.Document, error) {
	return s.repo.List(ctx)
}

func (s *documentService) Update(ctx context.Context, d *espd.Document) error {
	if err := s.repo.Update(ctx, d); err != nil {
		return translate(err)
	}
	s.invalidate(ctx, d.ID)
	return nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *documentService) invalidate(ctx context.Context, id string) {
	s.mu.Lock()
	s.gens[id]++
	s.mu.Unlock()
	if err := s.cache.Delete(ctx, cache.DocumentKey(id)); err != nil {
		log.Warnf("cache invalidate %s: %v", id, err)
	}
}

func (s *documentService) Summary(ctx context.Context, id string) (espd.Summary, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return espd.Summary{}, err
	}
	return d.Summary(), nil
}

func (s *documentService) Apply(ctx context.Context, id string, sweep espd.Sweep) (*espd.Document, espd.SweepReport, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, espd.SweepReport{}, translate(err)
	}
	rep, err := d.Apply(sweep)
	if err != nil {
		return nil, rep, err
	}
	metrics.CriterionSweeps.WithLabelValues(string(sweep)).Inc()
	if len(rep.Failures) > 0 {
		log.Warnf("sweep %s on %s: %d field(s) failed", sweep, id, len(rep.Failures))
	}
	if err := s.Update(ctx, d); err != nil {
		return nil, rep, err
	}
	return d, rep, nil
}

func (s *documentService) ReadCriterion(ctx context.Context, id, field string) (espd.Criterion, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return d.LookupCriterion(field)
}

// WriteCriterion decodes raw into a fresh value of the field's variant and
// stores it. A JSON null clears the field.
func (s *documentService) WriteCriterion(ctx context.Context, id, field string, raw []byte) (espd.Criterion, error) {
	v, err := espd.CriterionVariant(field)
	if err != nil {
		return nil, err
	}
	var c espd.Criterion
	if !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		if c, err = espd.NewCriterion(v); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", ErrInvalidCriterion, field, err)
		}
	}
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if err := d.StoreCriterion(field, c); err != nil {
		return nil, err
	}
	if err := s.Update(ctx, d); err != nil {
		return nil, err
	}
	return c, nil
}
