package worker

import (
	"context"
	"time"

	"github.com/Faizhasan01/Inkify-backend/internal/registry"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// RoomCleanupHandler 处理周期性的空房间回收任务：凡是没有参与者、
// 且创建时间早于宽限期之前的房间，都从注册表里移除。从客户端视角看
// 回收是静默的——被回收的房间里没有任何连接。
type RoomCleanupHandler struct {
	registry *registry.Registry
	grace    time.Duration
}

// NewRoomCleanupHandler 创建 Handler 实例。
func NewRoomCleanupHandler(reg *registry.Registry, grace time.Duration) *RoomCleanupHandler {
	if reg == nil {
		panic("Registry cannot be nil for RoomCleanupHandler")
	}
	if grace <= 0 {
		grace = 30 * time.Minute
	}
	return &RoomCleanupHandler{registry: reg, grace: grace}
}

// ProcessTask 实现 asynq.Handler 接口。
func (h *RoomCleanupHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := logrus.WithField("task_type", t.Type())

	removed := h.registry.EvictIdle(h.grace)
	if len(removed) == 0 {
		logCtx.Debug("Room cleanup sweep complete, nothing to evict")
		return nil
	}

	logCtx.WithFields(logrus.Fields{
		"evicted":      len(removed),
		"active_rooms": h.registry.Count(),
	}).Info("Room cleanup sweep complete")
	return nil
}
