package http

import (
	"net/http"

	"github.com/Faizhasan01/Inkify-backend/internal/registry"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RoomHandler 封装了房间 REST 表面的处理逻辑，薄薄一层委托给 Registry。
type RoomHandler struct {
	registry *registry.Registry
}

// NewRoomHandler 创建 RoomHandler 实例。
func NewRoomHandler(reg *registry.Registry) *RoomHandler {
	if reg == nil {
		panic("Registry cannot be nil for RoomHandler")
	}
	return &RoomHandler{registry: reg}
}

// CreateRoom 生成一个新房间并返回其 ID。需要认证。
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	roomID := h.registry.GenerateID()
	room := h.registry.GetOrCreate(roomID)
	logrus.WithField("room_id", roomID).Info("New room created via REST")
	SuccessResponse(c, http.StatusOK, gin.H{"roomId": room.ID()})
}

// GetRoomInfo 返回房间的参与者数和页面数。房间不存在时返回
// isNew 标记而非错误，且绝不因查询而创建房间。
func (h *RoomHandler) GetRoomInfo(c *gin.Context) {
	roomID := c.Param("roomId")
	room, ok := h.registry.Get(roomID)
	if !ok {
		SuccessResponse(c, http.StatusOK, gin.H{
			"roomId":    roomID,
			"userCount": 0,
			"pageCount": 0,
			"isNew":     true,
		})
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"roomId":    room.ID(),
		"userCount": room.ParticipantCount(),
		"pageCount": room.PageCount(),
	})
}

// ExportBoard 以草稿兼容的形状导出房间的全部页面。需要认证。
func (h *RoomHandler) ExportBoard(c *gin.Context) {
	roomID := c.Param("roomId")
	room, ok := h.registry.Get(roomID)
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "Room not found")
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"roomId": room.ID(),
		"pages":  room.AllPages(),
	})
}
