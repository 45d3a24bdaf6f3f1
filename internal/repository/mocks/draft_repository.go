package mocks

import (
	"context"

	"github.com/Faizhasan01/Inkify-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// DraftRepository 是 repository.DraftRepository 的 mock 实现。
type DraftRepository struct {
	mock.Mock
}

func (m *DraftRepository) FindByID(ctx context.Context, id uint) (*domain.Draft, error) {
	args := m.Called(ctx, id)
	var draft *domain.Draft
	if args.Get(0) != nil {
		draft = args.Get(0).(*domain.Draft)
	}
	return draft, args.Error(1)
}

func (m *DraftRepository) FindByOwner(ctx context.Context, ownerID uint) ([]domain.Draft, error) {
	args := m.Called(ctx, ownerID)
	var drafts []domain.Draft
	if args.Get(0) != nil {
		drafts = args.Get(0).([]domain.Draft)
	}
	return drafts, args.Error(1)
}

func (m *DraftRepository) FindByOwnerAndTitle(ctx context.Context, ownerID uint, title string) (*domain.Draft, error) {
	args := m.Called(ctx, ownerID, title)
	var draft *domain.Draft
	if args.Get(0) != nil {
		draft = args.Get(0).(*domain.Draft)
	}
	return draft, args.Error(1)
}

func (m *DraftRepository) Save(ctx context.Context, draft *domain.Draft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *DraftRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
