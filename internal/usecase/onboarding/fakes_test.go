package onboarding

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/gdugdh24/cofounders-backend/internal/infrastructure/gemini"
	"github.com/google/uuid"
)

// memProfiles mimics the single-statement upsert of the Postgres repository.
type memProfiles struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]domain.Profile
	inserts   int
	updates   int
	upsertErr error
}

func newMemProfiles() *memProfiles {
	return &memProfiles{rows: make(map[uuid.UUID]domain.Profile)}
}

func (m *memProfiles) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &row, nil
}

func (m *memProfiles) GetOnboardingStatus(ctx context.Context, id uuid.UUID) (bool, error) {
	p, err := m.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return p.OnboardingComplete, nil
}

func (m *memProfiles) Upsert(ctx context.Context, p *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}

	row := *p
	if existing, ok := m.rows[p.ID]; ok {
		m.updates++
		row.CreatedAt = existing.CreatedAt
		row.MemberSince = existing.MemberSince
		row.OnboardingComplete = existing.OnboardingComplete || p.OnboardingComplete
		row.IsOnline = existing.IsOnline || p.IsOnline
	} else {
		m.inserts++
		row.CreatedAt = p.UpdatedAt
	}
	m.rows[p.ID] = row

	p.OnboardingComplete = row.OnboardingComplete
	p.IsOnline = row.IsOnline
	p.MemberSince = row.MemberSince
	p.CreatedAt = row.CreatedAt
	return nil
}

// memDrafts stores JSON copies so unsaved changes never leak into the store.
type memDrafts struct {
	mu     sync.Mutex
	drafts map[uuid.UUID][]byte
}

func newMemDrafts() *memDrafts {
	return &memDrafts{drafts: make(map[uuid.UUID][]byte)}
}

func (m *memDrafts) Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.drafts[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	var d domain.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (m *memDrafts) Save(ctx context.Context, d *domain.Draft, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	m.drafts[d.IdentityID] = data
	return nil
}

func (m *memDrafts) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
	return nil
}

type memLock struct {
	mu   sync.Mutex
	held map[uuid.UUID]string
}

func newMemLock() *memLock {
	return &memLock{held: make(map[uuid.UUID]string)}
}

func (l *memLock) Acquire(ctx context.Context, id uuid.UUID, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[id]; ok {
		return "", false, nil
	}
	token := uuid.NewString()
	l.held[id] = token
	return token, true, nil
}

func (l *memLock) Release(ctx context.Context, id uuid.UUID, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[id] == token {
		delete(l.held, id)
	}
	return nil
}

type fakeMirror struct {
	url string
	err error
}

func (f fakeMirror) Mirror(ctx context.Context, id uuid.UUID, source string) (string, error) {
	return f.url, f.err
}

// recordingMirror remembers every URL it was asked to fetch.
type recordingMirror struct {
	mu      sync.Mutex
	sources []string
}

func (m *recordingMirror) Mirror(ctx context.Context, id uuid.UUID, source string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources = append(m.sources, source)
	return "/static/uploads/avatars/" + id.String() + ".jpg", nil
}

type fakeBios struct {
	got gemini.FounderSummary
	out []string
	err error
}

func (f *fakeBios) GenerateBios(ctx context.Context, founder gemini.FounderSummary) ([]string, error) {
	f.got = founder
	return f.out, f.err
}
