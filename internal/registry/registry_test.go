package registry_test // 测试包

import (
	"testing"
	"time"

	"github.com/Faizhasan01/Inkify-backend/internal/domain"
	"github.com/Faizhasan01/Inkify-backend/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_GetOrCreate_Idempotent(t *testing.T) {
	// Arrange
	reg := registry.NewRegistry()

	// Act
	room1 := reg.GetOrCreate("room-a")
	room2 := reg.GetOrCreate("room-a")

	// Assert: 同一 ID 的重复调用应返回同一个实例
	require.NotNil(t, room1)
	assert.Same(t, room1, room2, "同一房间 ID 应返回同一实例")
	assert.Equal(t, 1, reg.Count())
}

func TestRegistry_Get_NoCreationSideEffect(t *testing.T) {
	// Arrange
	reg := registry.NewRegistry()

	// Act
	room, ok := reg.Get("missing")

	// Assert: 查询不存在的房间不应创建房间
	assert.False(t, ok)
	assert.Nil(t, room)
	assert.Equal(t, 0, reg.Count(), "Get 不应产生创建副作用")

	// 创建后可以查到
	created := reg.GetOrCreate("present")
	found, ok := reg.Get("present")
	require.True(t, ok)
	assert.Same(t, created, found)
}

func TestRegistry_GenerateID(t *testing.T) {
	// Arrange
	reg := registry.NewRegistry()

	// Act
	id1 := reg.GenerateID()
	id2 := reg.GenerateID()

	// Assert: 6 字节随机数的十六进制编码，长度 12，且不应重复
	assert.Len(t, id1, 12)
	assert.NotEqual(t, id1, id2, "连续生成的 ID 不应相同")

	// 生成 ID 不应注册房间
	assert.Equal(t, 0, reg.Count())
}

func TestRegistry_EvictIdle_RemovesStaleEmptyRooms(t *testing.T) {
	// Arrange: 创建一个空房间，使用 0 宽限期让它立即过期
	reg := registry.NewRegistry()
	reg.GetOrCreate("stale")
	time.Sleep(10 * time.Millisecond)

	// Act
	removed := reg.EvictIdle(time.Millisecond)

	// Assert
	assert.Equal(t, []string{"stale"}, removed)
	assert.Equal(t, 0, reg.Count())
	_, ok := reg.Get("stale")
	assert.False(t, ok, "被回收的房间不应再能查到")
}

func TestRegistry_EvictIdle_KeepsOccupiedRooms(t *testing.T) {
	// Arrange: 房间内有参与者，即使超过宽限期也不应被回收
	reg := registry.NewRegistry()
	room := reg.GetOrCreate("busy")
	room.AddParticipant(&domain.Participant{ID: "u1", Username: "alice"})
	time.Sleep(10 * time.Millisecond)

	// Act
	removed := reg.EvictIdle(time.Millisecond)

	// Assert
	assert.Empty(t, removed, "有人的房间不应被回收")
	assert.Equal(t, 1, reg.Count())
}

func TestRegistry_EvictIdle_RespectsGraceWindow(t *testing.T) {
	// Arrange: 空房间但仍在宽限期内
	reg := registry.NewRegistry()
	reg.GetOrCreate("fresh")

	// Act
	removed := reg.EvictIdle(time.Hour)

	// Assert
	assert.Empty(t, removed, "宽限期内的空房间不应被回收")
	assert.Equal(t, 1, reg.Count())
}
