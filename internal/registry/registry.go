// Package registry 维护进程内的活跃房间表。
package registry

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/Faizhasan01/Inkify-backend/internal/domain"

	"github.com/sirupsen/logrus"
)

// Registry 是进程级的活跃房间表，按房间 ID 索引。
// 加入、分发和空闲回收会并发访问它，读写由读写锁保护；
// 房间内部状态由房间自己的锁负责，这里只管表本身。
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*domain.Room
}

// NewRegistry 创建一个空的房间表。
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*domain.Room)}
}

// GenerateID 生成一个抗碰撞的随机房间 ID（6 字节随机数的十六进制编码），
// 与房间内容无关，不可从序列猜测。
func (r *Registry) GenerateID() string {
	b := make([]byte, 6)
	// crypto/rand 的 Read 在现代平台上不会失败
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// GetOrCreate 返回 id 对应的房间，不存在则创建。幂等：
// 在房间被回收之前，同一 id 的重复调用返回同一个实例。
func (r *Registry) GetOrCreate(id string) *domain.Room {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok := r.rooms[id]; ok {
		return room
	}
	room := domain.NewRoom(id)
	r.rooms[id] = room
	logrus.WithField("room_id", id).Info("Room created")
	return room
}

// Get 返回 id 对应的房间，不存在时 ok 为 false，不产生创建副作用。
func (r *Registry) Get(id string) (*domain.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	return room, ok
}

// Count 返回当前活跃房间数。
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// EvictIdle 移除所有无人且创建时间早于 grace 之前的房间，返回被移除的房间 ID。
// 注意老化基准是房间的创建时间而不是变空的时间：一个被长时间占用后
// 刚刚变空的房间会在下一次清扫时立即被回收。这是沿用的历史行为。
func (r *Registry) EvictIdle(grace time.Duration) []string {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []string
	for id, room := range r.rooms {
		if room.ParticipantCount() == 0 && now.Sub(room.CreatedAt()) > grace {
			delete(r.rooms, id)
			removed = append(removed, id)
			logrus.WithField("room_id", id).Info("Room cleaned up (empty past grace window)")
		}
	}
	return removed
}
