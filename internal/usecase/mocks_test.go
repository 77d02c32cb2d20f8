package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

type mockSessionRepo struct {
	mock.Mock
}

func newMockSessionRepo(t *testing.T) *mockSessionRepo {
	m := &mockSessionRepo{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockSessionRepo) CreateOrUpdate(ctx context.Context, session *entity.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	args := m.Called(ctx, id)

	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (m *mockSessionRepo) Touch(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockMetrics struct {
	mock.Mock
}

func newMockMetrics(t *testing.T) *mockMetrics {
	m := &mockMetrics{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockMetrics) MoveApplied(accepted bool) {
	m.Called(accepted)
}

func (m *mockMetrics) Jumped(accepted bool) {
	m.Called(accepted)
}

func (m *mockMetrics) GameFinished(game *tictactoe.Game) {
	m.Called(game)
}

func (m *mockMetrics) SessionStarted() {
	m.Called()
}

func (m *mockMetrics) SessionEnded() {
	m.Called()
}
