package domain

import (
	"fmt"
	"sync"
	"time"
)

// CreatedByKey 是服务端在每个元素上盖章的作者字段。
// 客户端提交的同名字段一律被覆盖，不可信任。
const CreatedByKey = "createdBy"

// Element 表示画板上的一个绘图元素（笔迹、形状、文本等）。
// 除 createdBy 外，载荷对服务端完全不透明，原样透传。
type Element map[string]interface{}

// Page 表示房间内的一个画板页面。Elements 的顺序即 z 序 / 撤销序。
type Page struct {
	ID        string    `json:"id"`
	Elements  []Element `json:"elements"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sender 是参与者出站消息的投递接口，由传输层实现。
// Send 必须是非阻塞的：投递失败（队列满或连接已关闭）返回 false，
// 调用方直接跳过该接收者，不重试、不排队。
type Sender interface {
	Send(data []byte) bool
}

// Participant 表示一条活跃连接在某个房间内的身份。
// 一个 Participant 独占其连接，断开即销毁，不会在房间之间迁移。
type Participant struct {
	ID       string
	Username string
	Color    string
	Conn     Sender
}

// UserInfo 是在线列表广播中使用的参与者摘要。
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Color    string `json:"color"`
}

// PageState 是当前页的一份快照，取自锁内，广播时不再触碰房间状态。
type PageState struct {
	CurrentPage int
	TotalPages  int
	Elements    []Element
}

// Room 表示一个协作画板房间：一组有序页面、当前页游标和在线参与者集合。
// 所有可变状态由内部互斥锁保护，同一房间的操作彼此串行。
type Room struct {
	id        string
	createdAt time.Time

	mu           sync.Mutex
	pages        []*Page
	currentIndex int
	participants map[string]*Participant
}

// NewRoom 创建一个只有一个空页面的新房间。
func NewRoom(id string) *Room {
	return &Room{
		id:        id,
		createdAt: time.Now(),
		pages: []*Page{
			{ID: "page-1", Elements: make([]Element, 0), CreatedAt: time.Now()},
		},
		participants: make(map[string]*Participant),
	}
}

// ID 返回房间的不透明标识符。
func (r *Room) ID() string { return r.id }

// CreatedAt 返回房间创建时间，仅用于空闲回收的老化判断。
func (r *Room) CreatedAt() time.Time { return r.createdAt }

// AddParticipant 将参与者注册到房间。
func (r *Room) AddParticipant(p *Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants[p.ID] = p
}

// RemoveParticipant 将参与者从房间移除。参与者不存在时返回 false。
func (r *Room) RemoveParticipant(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.participants[id]; !ok {
		return false
	}
	delete(r.participants, id)
	return true
}

// Participants 返回当前参与者集合的一份副本，供广播遍历使用。
func (r *Room) Participants() []*Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Participant, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, p)
	}
	return out
}

// ParticipantCount 返回当前在线人数。
func (r *Room) ParticipantCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.participants)
}

// Users 返回在线列表广播所需的参与者摘要。
func (r *Room) Users() []UserInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]UserInfo, 0, len(r.participants))
	for _, p := range r.participants {
		users = append(users, UserInfo{ID: p.ID, Username: p.Username, Color: p.Color})
	}
	return users
}

// PageCount 返回页面数量。
func (r *Room) PageCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pages)
}

// Snapshot 返回当前页的快照。
func (r *Room) Snapshot() PageState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// snapshotLocked 构造当前页快照，调用方必须已持有 r.mu。
func (r *Room) snapshotLocked() PageState {
	page := r.pages[r.currentIndex]
	elements := make([]Element, len(page.Elements))
	copy(elements, page.Elements)
	return PageState{
		CurrentPage: r.currentIndex,
		TotalPages:  len(r.pages),
		Elements:    elements,
	}
}

// AppendElement 将元素追加到当前页，并以 userID 覆盖 createdBy 字段。
// 返回盖章后的元素，用于向其他参与者广播。
func (r *Room) AppendElement(userID string, el Element) Element {
	r.mu.Lock()
	defer r.mu.Unlock()
	if el == nil {
		el = make(Element)
	}
	el[CreatedByKey] = userID
	page := r.pages[r.currentIndex]
	page.Elements = append(page.Elements, el)
	return el
}

// ClearCurrent 清空当前页的全部元素。
func (r *Room) ClearCurrent() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[r.currentIndex].Elements = make([]Element, 0)
}

// Undo 从当前页末尾向前扫描，移除第一个由 userID 创建的元素。
// 最多移除一个；该用户在当前页没有元素时返回 ok=false，状态不变。
func (r *Room) Undo(userID string) (PageState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	page := r.pages[r.currentIndex]
	for i := len(page.Elements) - 1; i >= 0; i-- {
		if by, _ := page.Elements[i][CreatedByKey].(string); by == userID {
			page.Elements = append(page.Elements[:i], page.Elements[i+1:]...)
			return r.snapshotLocked(), true
		}
	}
	return PageState{}, false
}

// AddPage 追加一个新的空页面并把当前页游标移到它上面。
func (r *Room) AddPage() PageState {
	r.mu.Lock()
	defer r.mu.Unlock()
	page := &Page{
		ID:        fmt.Sprintf("page-%d", len(r.pages)+1),
		Elements:  make([]Element, 0),
		CreatedAt: time.Now(),
	}
	r.pages = append(r.pages, page)
	r.currentIndex = len(r.pages) - 1
	return r.snapshotLocked()
}

// Navigate 将当前页游标移动到 index。越界时返回 ok=false，状态不变。
func (r *Room) Navigate(index int) (PageState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.pages) {
		return PageState{}, false
	}
	r.currentIndex = index
	return r.snapshotLocked(), true
}

// DeletePage 删除 index 处的页面。最后一页不可删除；删除后若当前页
// 游标越界则收敛到最后一页。前置条件不满足时返回 ok=false。
func (r *Room) DeletePage(index int) (PageState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pages) <= 1 || index < 0 || index >= len(r.pages) {
		return PageState{}, false
	}
	r.pages = append(r.pages[:index], r.pages[index+1:]...)
	if r.currentIndex >= len(r.pages) {
		r.currentIndex = len(r.pages) - 1
	}
	return r.snapshotLocked(), true
}

// AllPages 返回全部页面的一份副本，顺序与房间内一致。
func (r *Room) AllPages() []Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	pages := make([]Page, 0, len(r.pages))
	for _, p := range r.pages {
		elements := make([]Element, len(p.Elements))
		copy(elements, p.Elements)
		pages = append(pages, Page{ID: p.ID, Elements: elements, CreatedAt: p.CreatedAt})
	}
	return pages
}

// LoadPages 用给定的页面列表整体替换房间页面，并把当前页游标重置为 0。
// 缺失的 id、元素列表和时间戳会补默认值。空列表违反"至少一页"的不变量，
// 返回 ok=false，状态不变。
func (r *Room) LoadPages(pages []Page) (PageState, bool) {
	if len(pages) == 0 {
		return PageState{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	loaded := make([]*Page, 0, len(pages))
	for i, p := range pages {
		page := &Page{ID: p.ID, Elements: p.Elements, CreatedAt: p.CreatedAt}
		if page.ID == "" {
			page.ID = fmt.Sprintf("page-%d", i+1)
		}
		if page.Elements == nil {
			page.Elements = make([]Element, 0)
		}
		if page.CreatedAt.IsZero() {
			page.CreatedAt = time.Now()
		}
		loaded = append(loaded, page)
	}
	r.pages = loaded
	r.currentIndex = 0
	return r.snapshotLocked(), true
}

// Reset 将房间恢复为单个空页面，当前页游标重置为 0。
func (r *Room) Reset() PageState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages = []*Page{
		{ID: "page-1", Elements: make([]Element, 0), CreatedAt: time.Now()},
	}
	r.currentIndex = 0
	return r.snapshotLocked()
}
