package bookingflow

import (
	"context"
	"sync"

	bookingservice "github.com/Sabyy027/hostel-core/internal/booking/service"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ManagerParams struct {
	fx.In

	Log        *zap.Logger
	BookingSvc *bookingservice.Service
}

// Manager holds per-student flows and sources the AlreadyBooked entry gate
// from the authoritative booking query, never from client-cached state.
type Manager struct {
	log        *zap.Logger
	bookingSvc *bookingservice.Service

	mu    sync.Mutex
	flows map[snowflake.ID]*Flow
}

func NewManager(p ManagerParams) *Manager {
	return &Manager{
		log:        p.Log.Named("bookingflow.manager"),
		bookingSvc: p.BookingSvc,
		flows:      make(map[snowflake.ID]*Flow),
	}
}

// Get returns the student's flow, creating it from the booking gate on
// first touch.
func (m *Manager) Get(ctx context.Context, studentID snowflake.ID) (*Flow, error) {
	m.mu.Lock()
	if flow, ok := m.flows[studentID]; ok {
		m.mu.Unlock()
		return flow, nil
	}
	m.mu.Unlock()

	existing, err := m.bookingSvc.MyBooking(ctx, studentID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if flow, ok := m.flows[studentID]; ok {
		return flow, nil
	}
	flow := New(existing != nil)
	m.flows[studentID] = flow
	return flow, nil
}

// Mutate runs fn against the student's flow under the manager lock. fn must
// not block on I/O.
func (m *Manager) Mutate(ctx context.Context, studentID snowflake.ID, fn func(*Flow) error) error {
	flow, err := m.Get(ctx, studentID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(flow)
}

// Drop forgets a student's flow, forcing the gate query to run again on
// next access.
func (m *Manager) Drop(studentID snowflake.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flows, studentID)
}
