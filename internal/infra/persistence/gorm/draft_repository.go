package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Faizhasan01/Inkify-backend/internal/domain"
	"github.com/Faizhasan01/Inkify-backend/internal/repository"
)

// GormDraftRepository 是 DraftRepository 接口的 GORM 实现。
type GormDraftRepository struct {
	db *gorm.DB
}

// NewGormDraftRepository 创建 GormDraftRepository 实例。
func NewGormDraftRepository(db *gorm.DB) *GormDraftRepository {
	if db == nil {
		panic("database connection cannot be nil for GormDraftRepository")
	}
	return &GormDraftRepository{db: db}
}

// FindByID 实现根据草稿 ID 查找草稿。
func (r *GormDraftRepository) FindByID(ctx context.Context, id uint) (*domain.Draft, error) {
	var draft domain.Draft
	err := r.db.WithContext(ctx).First(&draft, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDraftNotFound
		}
		return nil, fmt.Errorf("gorm: find draft by id %d: %w", id, err)
	}
	return &draft, nil
}

// FindByOwner 实现按所有者列出草稿，最近更新的在前。
func (r *GormDraftRepository) FindByOwner(ctx context.Context, ownerID uint) ([]domain.Draft, error) {
	var drafts []domain.Draft
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&drafts).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find drafts by owner %d: %w", ownerID, err)
	}
	return drafts, nil
}

// FindByOwnerAndTitle 实现按所有者和标题查找草稿。
func (r *GormDraftRepository) FindByOwnerAndTitle(ctx context.Context, ownerID uint, title string) (*domain.Draft, error) {
	var draft domain.Draft
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND title = ?", ownerID, title).
		First(&draft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDraftNotFound
		}
		return nil, fmt.Errorf("gorm: find draft by owner %d and title '%s': %w", ownerID, title, err)
	}
	return &draft, nil
}

// Save 实现保存草稿（创建或更新）。
func (r *GormDraftRepository) Save(ctx context.Context, draft *domain.Draft) error {
	err := r.db.WithContext(ctx).Save(draft).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save draft (id: %d, owner: %d): %w", draft.ID, draft.OwnerID, err)
	}
	return nil
}

// Delete 实现根据 ID 删除草稿。
func (r *GormDraftRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&domain.Draft{}, id).Error
	if err != nil {
		return fmt.Errorf("gorm: delete draft %d: %w", id, err)
	}
	return nil
}
