package repository

import (
	"context"

	"github.com/Faizhasan01/Inkify-backend/internal/domain"
)

// DraftRepository 定义草稿文档的存储和检索操作。
type DraftRepository interface {
	// FindByID 根据草稿 ID 查找草稿。不存在时返回 ErrDraftNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Draft, error)

	// FindByOwner 返回某个用户拥有的全部草稿，按更新时间倒序。
	FindByOwner(ctx context.Context, ownerID uint) ([]domain.Draft, error)

	// FindByOwnerAndTitle 按所有者和标题查找草稿，用于重名检查。
	// 不存在时返回 ErrDraftNotFound。
	FindByOwnerAndTitle(ctx context.Context, ownerID uint, title string) (*domain.Draft, error)

	// Save 保存草稿（基于 ID 存在则更新，否则创建）。
	// 唯一约束冲突时返回 ErrDuplicateEntry。
	Save(ctx context.Context, draft *domain.Draft) error

	// Delete 根据 ID 删除草稿。
	Delete(ctx context.Context, id uint) error
}
