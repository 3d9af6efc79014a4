package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/crucial707/travel-tracker/internal/models"
	"github.com/lib/pq"
)

// memUsers is an in-memory UserStore with a unique email index.
type memUsers struct {
	mu     sync.Mutex
	byID   map[int]*models.User
	nextID int

	getErr    error
	createErr error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[int]*models.User{}, nextID: 1}
}

func (m *memUsers) Create(_ context.Context, email, hash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, u := range m.byID {
		if u.Email == email {
			return nil, &pq.Error{Code: "23505"}
		}
	}
	now := time.Now()
	u := &models.User{ID: m.nextID, Email: email, PasswordHash: hash, CreatedAt: now, UpdatedAt: now}
	m.byID[u.ID] = u
	m.nextID++
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

// memDestinations is an in-memory DestinationStore.
type memDestinations struct {
	mu     sync.Mutex
	rows   map[int]*models.Destination
	nextID int

	err error
}

func newMemDestinations() *memDestinations {
	return &memDestinations{rows: map[int]*models.Destination{}, nextID: 1}
}

func (m *memDestinations) Create(_ context.Context, ownerID int, nd models.NewDestination) (*models.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	now := time.Now()
	d := &models.Destination{
		ID: m.nextID, Name: nd.Name, TravelDate: nd.TravelDate, Notes: nd.Notes,
		OwnerID: ownerID, CreatedAt: now, UpdatedAt: now,
	}
	m.rows[d.ID] = d
	m.nextID++
	cp := *d
	return &cp, nil
}

func (m *memDestinations) GetByID(_ context.Context, id int) (*models.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	d, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *d
	return &cp, nil
}

func (m *memDestinations) ListByOwner(_ context.Context, ownerID int) ([]models.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Destination
	for id := 1; id < m.nextID; id++ {
		if d, ok := m.rows[id]; ok && d.OwnerID == ownerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *memDestinations) Update(_ context.Context, id, ownerID int, p models.DestinationPatch) (*models.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok || d.OwnerID != ownerID {
		return nil, sql.ErrNoRows
	}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.TravelDate != nil {
		d.TravelDate = p.TravelDate
	}
	if p.Notes != nil {
		d.Notes = p.Notes
	}
	d.UpdatedAt = time.Now()
	cp := *d
	return &cp, nil
}

func (m *memDestinations) Delete(_ context.Context, id, ownerID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok || d.OwnerID != ownerID {
		return sql.ErrNoRows
	}
	delete(m.rows, id)
	return nil
}

type auditCall struct {
	userID int
	action string
	id     int
}

type memAudit struct {
	calls []auditCall
	err   error
}

func (a *memAudit) Log(_ context.Context, userID int, action, _ string, id int, _ string) error {
	a.calls = append(a.calls, auditCall{userID, action, id})
	return a.err
}
