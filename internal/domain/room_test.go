package domain_test // 测试包

import (
	"testing"

	"github.com/Faizhasan01/Inkify-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- 测试房间初始状态 ---

func TestNewRoom_InitialState(t *testing.T) {
	// Arrange & Act
	room := domain.NewRoom("abc123")

	// Assert: 新房间应有且仅有一页空白页，游标在第 0 页
	assert.Equal(t, "abc123", room.ID())
	assert.Equal(t, 1, room.PageCount(), "新房间应只有一页")
	assert.Equal(t, 0, room.ParticipantCount())
	assert.False(t, room.CreatedAt().IsZero(), "创建时间应被设置")

	state := room.Snapshot()
	assert.Equal(t, 0, state.CurrentPage)
	assert.Equal(t, 1, state.TotalPages)
	assert.Empty(t, state.Elements, "新页面上不应有元素")
}

// --- 测试元素追加与作者盖章 ---

func TestRoom_AppendElement_StampsAuthor(t *testing.T) {
	// Arrange
	room := domain.NewRoom("r1")
	el := domain.Element{"kind": "stroke", "points": []interface{}{1.0, 2.0}}

	// Act
	stamped := room.AppendElement("user-1", el)

	// Assert: createdBy 应被服务端盖章
	assert.Equal(t, "user-1", stamped[domain.CreatedByKey])
	state := room.Snapshot()
	require.Len(t, state.Elements, 1)
	assert.Equal(t, "user-1", state.Elements[0][domain.CreatedByKey])
}

func TestRoom_AppendElement_OverridesClientClaim(t *testing.T) {
	// Arrange: 客户端伪造了 createdBy 字段
	room := domain.NewRoom("r1")
	el := domain.Element{"kind": "stroke", domain.CreatedByKey: "impostor"}

	// Act
	stamped := room.AppendElement("real-user", el)

	// Assert: 客户端声明被覆盖，不可信任
	assert.Equal(t, "real-user", stamped[domain.CreatedByKey], "客户端提交的 createdBy 应被覆盖")
}

func TestRoom_AppendElement_NilElement(t *testing.T) {
	// Arrange
	room := domain.NewRoom("r1")

	// Act: nil 元素也应被接受并盖章
	stamped := room.AppendElement("u1", nil)

	// Assert
	require.NotNil(t, stamped)
	assert.Equal(t, "u1", stamped[domain.CreatedByKey])
	assert.Len(t, room.Snapshot().Elements, 1)
}

// --- 测试清空与撤销 ---

func TestRoom_ClearCurrent(t *testing.T) {
	// Arrange
	room := domain.NewRoom("r1")
	room.AppendElement("u1", domain.Element{"kind": "stroke"})
	room.AppendElement("u2", domain.Element{"kind": "shape"})

	// Act
	room.ClearCurrent()

	// Assert
	assert.Empty(t, room.Snapshot().Elements, "清空后当前页不应有元素")
	assert.Equal(t, 1, room.PageCount(), "清空不应影响页面数量")
}

func TestRoom_Undo_RemovesOwnLatestOnly(t *testing.T) {
	// Arrange: u1 和 u2 交替画了三个元素
	room := domain.NewRoom("r1")
	room.AppendElement("u1", domain.Element{"seq": 1})
	room.AppendElement("u2", domain.Element{"seq": 2})
	room.AppendElement("u1", domain.Element{"seq": 3})

	// Act: u1 撤销
	state, ok := room.Undo("u1")

	// Assert: 只移除 u1 最后画的元素 (seq=3)，u2 的元素不受影响
	require.True(t, ok)
	require.Len(t, state.Elements, 2)
	assert.Equal(t, 1, state.Elements[0]["seq"])
	assert.Equal(t, 2, state.Elements[1]["seq"])
	assert.Equal(t, "u2", state.Elements[1][domain.CreatedByKey])
}

func TestRoom_Undo_NothingToUndo(t *testing.T) {
	// Arrange: 当前页上没有 u2 的元素
	room := domain.NewRoom("r1")
	room.AppendElement("u1", domain.Element{"seq": 1})

	// Act
	_, ok := room.Undo("u2")

	// Assert: 无可撤销时返回 false，状态不变
	assert.False(t, ok, "无可撤销元素时应返回 false")
	assert.Len(t, room.Snapshot().Elements, 1)
}

// --- 测试页面管理 ---

func TestRoom_AddPage_MovesCursor(t *testing.T) {
	// Arrange
	room := domain.NewRoom("r1")
	room.AppendElement("u1", domain.Element{"seq": 1})

	// Act
	state := room.AddPage()

	// Assert: 新页追加在末尾，游标跟随到新页，新页为空
	assert.Equal(t, 2, state.TotalPages)
	assert.Equal(t, 1, state.CurrentPage)
	assert.Empty(t, state.Elements, "新页面应为空")
}

func TestRoom_Navigate(t *testing.T) {
	// Arrange: 两页，第 0 页上有一个元素
	room := domain.NewRoom("r1")
	room.AppendElement("u1", domain.Element{"seq": 1})
	room.AddPage()

	// Act: 导航回第 0 页
	state, ok := room.Navigate(0)

	// Assert
	require.True(t, ok)
	assert.Equal(t, 0, state.CurrentPage)
	assert.Len(t, state.Elements, 1, "导航后应看到目标页的元素")

	// 越界导航应被拒绝且状态不变
	_, ok = room.Navigate(5)
	assert.False(t, ok, "越界索引应被拒绝")
	_, ok = room.Navigate(-1)
	assert.False(t, ok)
	assert.Equal(t, 0, room.Snapshot().CurrentPage, "失败的导航不应移动游标")
}

func TestRoom_DeletePage_ClampsCursor(t *testing.T) {
	// Arrange: 三页，游标停在最后一页
	room := domain.NewRoom("r1")
	room.AddPage()
	room.AddPage()
	require.Equal(t, 2, room.Snapshot().CurrentPage)

	// Act: 删除当前所在的最后一页
	state, ok := room.DeletePage(2)

	// Assert: 游标收敛到新的最后一页
	require.True(t, ok)
	assert.Equal(t, 2, state.TotalPages)
	assert.Equal(t, 1, state.CurrentPage, "删除后越界的游标应收敛到最后一页")
}

func TestRoom_DeletePage_LastPageRejected(t *testing.T) {
	// Arrange
	room := domain.NewRoom("r1")

	// Act
	_, ok := room.DeletePage(0)

	// Assert: 房间必须始终至少保留一页
	assert.False(t, ok, "最后一页不可删除")
	assert.Equal(t, 1, room.PageCount())
}

func TestRoom_DeletePage_OutOfRange(t *testing.T) {
	room := domain.NewRoom("r1")
	room.AddPage()

	_, ok := room.DeletePage(5)
	assert.False(t, ok)
	_, ok = room.DeletePage(-1)
	assert.False(t, ok)
	assert.Equal(t, 2, room.PageCount(), "失败的删除不应改变页面数量")
}

// --- 测试整体装载与重置 ---

func TestRoom_LoadPages_ReplacesDocument(t *testing.T) {
	// Arrange: 房间里已有内容
	room := domain.NewRoom("r1")
	room.AppendElement("u1", domain.Element{"seq": 1})
	room.AddPage()

	incoming := []domain.Page{
		{ID: "doc-1", Elements: []domain.Element{{"seq": 10}}},
		{}, // 缺省字段应被补默认值
	}

	// Act
	state, ok := room.LoadPages(incoming)

	// Assert: 文档被整体替换，游标回到第 0 页
	require.True(t, ok)
	assert.Equal(t, 2, state.TotalPages)
	assert.Equal(t, 0, state.CurrentPage)
	assert.Len(t, state.Elements, 1)

	pages := room.AllPages()
	require.Len(t, pages, 2)
	assert.Equal(t, "doc-1", pages[0].ID)
	assert.Equal(t, "page-2", pages[1].ID, "缺失的页面 ID 应补默认值")
	assert.NotNil(t, pages[1].Elements, "缺失的元素列表应补为空列表")
	assert.False(t, pages[1].CreatedAt.IsZero(), "缺失的时间戳应补当前时间")
}

func TestRoom_LoadPages_EmptyRejected(t *testing.T) {
	// Arrange
	room := domain.NewRoom("r1")
	room.AppendElement("u1", domain.Element{"seq": 1})

	// Act
	_, ok := room.LoadPages([]domain.Page{})

	// Assert: 空列表会破坏"至少一页"的不变量，应被拒绝且状态不变
	assert.False(t, ok, "空页面列表应被拒绝")
	assert.Equal(t, 1, room.PageCount())
	assert.Len(t, room.Snapshot().Elements, 1)
}

func TestRoom_Reset(t *testing.T) {
	// Arrange
	room := domain.NewRoom("r1")
	room.AppendElement("u1", domain.Element{"seq": 1})
	room.AddPage()
	room.AppendElement("u1", domain.Element{"seq": 2})

	// Act
	state := room.Reset()

	// Assert: 回到单页空白状态
	assert.Equal(t, 1, state.TotalPages)
	assert.Equal(t, 0, state.CurrentPage)
	assert.Empty(t, state.Elements)
}

// --- 测试快照隔离 ---

func TestRoom_Snapshot_IsIsolatedCopy(t *testing.T) {
	// Arrange
	room := domain.NewRoom("r1")
	room.AppendElement("u1", domain.Element{"seq": 1})

	// Act: 取快照后继续追加元素
	state := room.Snapshot()
	room.AppendElement("u1", domain.Element{"seq": 2})

	// Assert: 快照不应随房间状态变化
	assert.Len(t, state.Elements, 1, "快照应是取出时刻的副本")
	assert.Len(t, room.Snapshot().Elements, 2)
}

// --- 测试参与者管理 ---

func TestRoom_ParticipantLifecycle(t *testing.T) {
	// Arrange
	room := domain.NewRoom("r1")
	p := &domain.Participant{ID: "u1", Username: "alice", Color: "#3B82F6"}

	// Act & Assert
	room.AddParticipant(p)
	assert.Equal(t, 1, room.ParticipantCount())

	users := room.Users()
	require.Len(t, users, 1)
	assert.Equal(t, domain.UserInfo{ID: "u1", Username: "alice", Color: "#3B82F6"}, users[0])

	assert.True(t, room.RemoveParticipant("u1"))
	assert.Equal(t, 0, room.ParticipantCount())
	assert.False(t, room.RemoveParticipant("u1"), "重复移除应返回 false")
}

// --- 测试颜色分配 ---

func TestColorFromName_Deterministic(t *testing.T) {
	// 同名必得同色
	c1 := domain.ColorFromName("alice")
	c2 := domain.ColorFromName("alice")
	assert.Equal(t, c1, c2, "同一用户名应始终得到同一颜色")
	assert.NotEmpty(t, c1)
	assert.Equal(t, byte('#'), c1[0])
}

func TestColorFromName_EmptyName(t *testing.T) {
	// 空用户名也应得到调色板中的颜色，不 panic
	c := domain.ColorFromName("")
	assert.NotEmpty(t, c)
}
