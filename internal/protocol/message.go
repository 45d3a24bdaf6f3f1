// Package protocol 定义白板会话的线上消息协议，并把入站消息分发到房间状态变更。
package protocol

import "github.com/Faizhasan01/Inkify-backend/internal/domain"

// 入站消息类型。消息是以 type 字段区分的 JSON 对象，每帧一条。
const (
	TypeJoin          = "join"
	TypeElementCreate = "element:create"
	TypeBoardClear    = "board:clear"
	TypeBoardUndo     = "board:undo"
	TypePageAdd       = "page:add"
	TypePageNavigate  = "page:navigate"
	TypePageDelete    = "page:delete"
	TypeCursorMove    = "cursor:move"
	TypePageGetAll    = "page:getAll"
	TypePageLoad      = "page:load"
	TypePageReset     = "page:reset"
)

// 出站消息类型。
const (
	TypeWelcome   = "welcome"
	TypePageState = "page:state"
	TypeUsers     = "users"
	TypeAllPages  = "page:allPages"
)

// Inbound 是入站消息的信封：所有消息种类共用一个结构，
// 按 Type 取对应的载荷字段，未用到的字段保持零值。
type Inbound struct {
	Type      string         `json:"type"`
	Username  string         `json:"username,omitempty"`
	RoomID    string         `json:"roomId,omitempty"`
	Element   domain.Element `json:"element,omitempty"`
	PageIndex *int           `json:"pageIndex,omitempty"`
	Pages     []domain.Page  `json:"pages,omitempty"`
	X         float64        `json:"x,omitempty"`
	Y         float64        `json:"y,omitempty"`
}

// Welcome 在 join 成功后单播给新参与者，告知分配的身份。
type Welcome struct {
	Type     string `json:"type"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Color    string `json:"color"`
	RoomID   string `json:"roomId"`
}

// PageStateMsg 是当前页快照的广播形式。
type PageStateMsg struct {
	Type        string           `json:"type"`
	CurrentPage int              `json:"currentPage"`
	TotalPages  int              `json:"totalPages"`
	Elements    []domain.Element `json:"elements"`
}

// UsersMsg 是在线列表广播。
type UsersMsg struct {
	Type  string            `json:"type"`
	Users []domain.UserInfo `json:"users"`
}

// ElementCreateMsg 把新元素转发给除作者外的所有参与者。
type ElementCreateMsg struct {
	Type    string         `json:"type"`
	Element domain.Element `json:"element"`
}

// BoardClearMsg 通知所有参与者当前页已被清空。
type BoardClearMsg struct {
	Type string `json:"type"`
}

// CursorMoveMsg 把光标位置转发给除发送者外的所有参与者。
type CursorMoveMsg struct {
	Type   string  `json:"type"`
	UserID string  `json:"userId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// AllPagesMsg 单播全部页面，供持久化导出使用。
type AllPagesMsg struct {
	Type  string        `json:"type"`
	Pages []domain.Page `json:"pages"`
}

// pageStateMsg 从快照构造 page:state 消息。
func pageStateMsg(state domain.PageState) PageStateMsg {
	return PageStateMsg{
		Type:        TypePageState,
		CurrentPage: state.CurrentPage,
		TotalPages:  state.TotalPages,
		Elements:    state.Elements,
	}
}
