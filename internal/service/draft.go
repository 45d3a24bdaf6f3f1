package service

import (
	"context"
	"errors"

	"github.com/Faizhasan01/Inkify-backend/internal/domain"
	"github.com/Faizhasan01/Inkify-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// DraftService 负责草稿（持久化画板文档）的业务逻辑。
// 草稿与实时房间共享同一套 Page/Element 数据形状：导出时读房间页面存库，
// 打开时用库里的页面播种一个新房间。
type DraftService struct {
	draftRepo repository.DraftRepository
}

// NewDraftService 创建 DraftService 实例。
func NewDraftService(draftRepo repository.DraftRepository) *DraftService {
	if draftRepo == nil {
		panic("DraftRepository cannot be nil for DraftService")
	}
	return &DraftService{draftRepo: draftRepo}
}

// Create 以给定页面创建一份新草稿。同一所有者下标题必须唯一。
func (s *DraftService) Create(ctx context.Context, ownerID uint, title string, pages []domain.Page) (*domain.Draft, error) {
	logCtx := logrus.WithFields(logrus.Fields{"owner_id": ownerID, "title": title})

	if title == "" {
		title = "Untitled Draft"
	}

	// 1. 重名检查
	existing, err := s.draftRepo.FindByOwnerAndTitle(ctx, ownerID, title)
	if err != nil && !errors.Is(err, repository.ErrDraftNotFound) {
		logCtx.WithError(err).Error("Failed to check for duplicate draft title")
		return nil, ErrInternalServer
	}
	if existing != nil {
		logCtx.Warn("Draft creation rejected: duplicate title")
		return nil, ErrDuplicateTitle
	}

	// 2. 构造草稿；没有页面时给一页空白
	if len(pages) == 0 {
		pages = []domain.Page{{ID: "page-1", Elements: make([]domain.Element, 0)}}
	}
	draft := &domain.Draft{
		OwnerID: ownerID,
		Title:   title,
	}
	if err := draft.SetPages(pages); err != nil {
		logCtx.WithError(err).Error("Failed to serialize draft pages")
		return nil, ErrInternalServer
	}

	// 3. 保存
	if err := s.draftRepo.Save(ctx, draft); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrDuplicateTitle
		}
		logCtx.WithError(err).Error("Failed to save new draft")
		return nil, ErrInternalServer
	}

	logCtx.WithField("draft_id", draft.ID).Info("Draft created")
	return draft, nil
}

// List 返回用户拥有的全部草稿。
func (s *DraftService) List(ctx context.Context, ownerID uint) ([]domain.Draft, error) {
	drafts, err := s.draftRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		logrus.WithError(err).WithField("owner_id", ownerID).Error("Failed to list drafts")
		return nil, ErrInternalServer
	}
	return drafts, nil
}

// Get 返回一份草稿，并校验访问者是其所有者（公开草稿放行只读访问）。
func (s *DraftService) Get(ctx context.Context, ownerID, draftID uint) (*domain.Draft, error) {
	draft, err := s.draftRepo.FindByID(ctx, draftID)
	if err != nil {
		if errors.Is(err, repository.ErrDraftNotFound) {
			return nil, ErrDraftNotFound
		}
		logrus.WithError(err).WithField("draft_id", draftID).Error("Failed to fetch draft")
		return nil, ErrInternalServer
	}
	if draft.OwnerID != ownerID && !draft.IsPublic {
		return nil, ErrDraftAccessDenied
	}
	return draft, nil
}

// Update 更新草稿的标题和/或页面。只有所有者可以更新。
// pages 为 nil 时保留原有页面；title 为空时保留原有标题。
func (s *DraftService) Update(ctx context.Context, ownerID, draftID uint, title string, pages []domain.Page) (*domain.Draft, error) {
	logCtx := logrus.WithFields(logrus.Fields{"owner_id": ownerID, "draft_id": draftID})

	draft, err := s.draftRepo.FindByID(ctx, draftID)
	if err != nil {
		if errors.Is(err, repository.ErrDraftNotFound) {
			return nil, ErrDraftNotFound
		}
		logCtx.WithError(err).Error("Failed to fetch draft for update")
		return nil, ErrInternalServer
	}
	if draft.OwnerID != ownerID {
		return nil, ErrDraftAccessDenied
	}

	if title != "" {
		draft.Title = title
	}
	if pages != nil {
		if err := draft.SetPages(pages); err != nil {
			logCtx.WithError(err).Error("Failed to serialize updated draft pages")
			return nil, ErrInternalServer
		}
	}

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrDuplicateTitle
		}
		logCtx.WithError(err).Error("Failed to save updated draft")
		return nil, ErrInternalServer
	}

	logCtx.Info("Draft updated")
	return draft, nil
}

// Delete 删除草稿。只有所有者可以删除。
func (s *DraftService) Delete(ctx context.Context, ownerID, draftID uint) error {
	logCtx := logrus.WithFields(logrus.Fields{"owner_id": ownerID, "draft_id": draftID})

	draft, err := s.draftRepo.FindByID(ctx, draftID)
	if err != nil {
		if errors.Is(err, repository.ErrDraftNotFound) {
			return ErrDraftNotFound
		}
		logCtx.WithError(err).Error("Failed to fetch draft for deletion")
		return ErrInternalServer
	}
	if draft.OwnerID != ownerID {
		return ErrDraftAccessDenied
	}

	if err := s.draftRepo.Delete(ctx, draftID); err != nil {
		logCtx.WithError(err).Error("Failed to delete draft")
		return ErrInternalServer
	}

	logCtx.Info("Draft deleted")
	return nil
}
