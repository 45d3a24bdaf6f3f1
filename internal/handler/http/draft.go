package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Faizhasan01/Inkify-backend/internal/domain"
	"github.com/Faizhasan01/Inkify-backend/internal/registry"
	"github.com/Faizhasan01/Inkify-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DraftHandler 封装了草稿管理的 HTTP 处理逻辑。
type DraftHandler struct {
	draftService *service.DraftService
	registry     *registry.Registry
}

// NewDraftHandler 创建 DraftHandler 实例。
func NewDraftHandler(draftService *service.DraftService, reg *registry.Registry) *DraftHandler {
	if draftService == nil {
		panic("DraftService cannot be nil for DraftHandler")
	}
	if reg == nil {
		panic("Registry cannot be nil for DraftHandler")
	}
	return &DraftHandler{draftService: draftService, registry: reg}
}

// DraftRequest 定义创建/更新草稿请求的结构体。
type DraftRequest struct {
	Title string        `json:"title"`
	Pages []domain.Page `json:"pages"`
}

// DraftResponse 定义草稿的响应结构体，页面以解析后的形状返回。
type DraftResponse struct {
	ID        uint          `json:"id"`
	Title     string        `json:"title"`
	Pages     []domain.Page `json:"pages"`
	IsPublic  bool          `json:"isPublic"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

// toDraftResponse 把草稿实体转为响应形状。页面 JSON 损坏时退化为空列表。
func toDraftResponse(draft *domain.Draft) DraftResponse {
	pages, err := draft.ParsePages()
	if err != nil {
		logrus.WithError(err).WithField("draft_id", draft.ID).Warn("Stored draft pages are corrupt")
		pages = []domain.Page{}
	}
	return DraftResponse{
		ID:        draft.ID,
		Title:     draft.Title,
		Pages:     pages,
		IsPublic:  draft.IsPublic,
		CreatedAt: draft.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: draft.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// CreateDraft 为认证用户创建一份草稿。
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid input")
		return
	}

	draft, err := h.draftService.Create(c.Request.Context(), ownerID, req.Title, req.Pages)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateTitle) {
			ErrorResponse(c, http.StatusBadRequest, "A draft with this name already exists. Please choose a different name.")
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "Failed to create draft")
		return
	}
	SuccessResponse(c, http.StatusCreated, toDraftResponse(draft))
}

// ListDrafts 返回认证用户的全部草稿。
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	drafts, err := h.draftService.List(c.Request.Context(), ownerID)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch drafts")
		return
	}
	out := make([]DraftResponse, 0, len(drafts))
	for i := range drafts {
		out = append(out, toDraftResponse(&drafts[i]))
	}
	SuccessResponse(c, http.StatusOK, out)
}

// GetDraft 返回一份草稿。
func (h *DraftHandler) GetDraft(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	draftID, ok := draftIDParam(c)
	if !ok {
		return
	}

	draft, err := h.draftService.Get(c.Request.Context(), ownerID, draftID)
	if err != nil {
		respondDraftError(c, err, "Failed to fetch draft")
		return
	}
	SuccessResponse(c, http.StatusOK, toDraftResponse(draft))
}

// UpdateDraft 更新草稿的标题和/或页面。
func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	draftID, ok := draftIDParam(c)
	if !ok {
		return
	}

	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid input")
		return
	}

	draft, err := h.draftService.Update(c.Request.Context(), ownerID, draftID, req.Title, req.Pages)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateTitle) {
			ErrorResponse(c, http.StatusBadRequest, "A draft with this name already exists. Please choose a different name.")
			return
		}
		respondDraftError(c, err, "Failed to update draft")
		return
	}
	SuccessResponse(c, http.StatusOK, toDraftResponse(draft))
}

// DeleteDraft 删除草稿。
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	draftID, ok := draftIDParam(c)
	if !ok {
		return
	}

	if err := h.draftService.Delete(c.Request.Context(), ownerID, draftID); err != nil {
		respondDraftError(c, err, "Failed to delete draft")
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Draft deleted"})
}

// OpenDraft 用草稿的页面播种一个全新的房间并返回房间 ID，
// 即持久化存储向实时会话的带外 "load"。
func (h *DraftHandler) OpenDraft(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	draftID, ok := draftIDParam(c)
	if !ok {
		return
	}

	draft, err := h.draftService.Get(c.Request.Context(), ownerID, draftID)
	if err != nil {
		respondDraftError(c, err, "Failed to open draft")
		return
	}
	pages, err := draft.ParsePages()
	if err != nil {
		logrus.WithError(err).WithField("draft_id", draft.ID).Error("Stored draft pages are corrupt")
		ErrorResponse(c, http.StatusInternalServerError, "Failed to open draft")
		return
	}

	roomID := h.registry.GenerateID()
	room := h.registry.GetOrCreate(roomID)
	if _, ok := room.LoadPages(pages); !ok {
		// 空草稿：保留新房间自带的空白页
		logrus.WithField("draft_id", draft.ID).Debug("Draft has no pages, opening blank room")
	}

	logrus.WithFields(logrus.Fields{
		"draft_id": draft.ID,
		"room_id":  roomID,
	}).Info("Draft opened into room")
	SuccessResponse(c, http.StatusOK, gin.H{"roomId": roomID})
}

// currentUserID 从 Gin 上下文取出 Auth 中间件写入的用户 ID。
func currentUserID(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get("user_id")
	if !exists {
		logrus.Warn("Handler: user ID not found in context, middleware missing or failed?")
		ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	if !ok {
		logrus.Error("Handler: user ID in context is not uint")
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		return 0, false
	}
	return userID, true
}

// draftIDParam 解析路径中的草稿 ID。
func draftIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id64, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid draft ID")
		return 0, false
	}
	return uint(id64), true
}

// respondDraftError 把草稿业务错误映射为 HTTP 状态码。
func respondDraftError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		ErrorResponse(c, http.StatusNotFound, "Draft not found")
	case errors.Is(err, service.ErrDraftAccessDenied):
		ErrorResponse(c, http.StatusForbidden, "Access denied")
	default:
		ErrorResponse(c, http.StatusInternalServerError, fallback)
	}
}
