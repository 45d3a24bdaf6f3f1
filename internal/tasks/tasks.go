// Package tasks 定义后台任务的类型常量和载荷。
package tasks

import "github.com/hibiken/asynq"

// 任务类型常量。
const (
	// TypeRoomCleanup 是周期性的空房间回收任务。
	TypeRoomCleanup = "room:cleanup"
)

// NewRoomCleanupTask 创建一个空房间回收任务。清扫本身不需要参数，
// 回收阈值由 Worker 端的 Handler 持有。
func NewRoomCleanupTask() *asynq.Task {
	return asynq.NewTask(TypeRoomCleanup, nil)
}
