package protocol

import (
	"encoding/json"

	"github.com/Faizhasan01/Inkify-backend/internal/domain"
	"github.com/Faizhasan01/Inkify-backend/internal/registry"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Broadcaster 是分发器依赖的扇出原语，对每个活跃连接尽力投递一次，
// 投递失败的接收者直接跳过，不影响其余接收者。
type Broadcaster interface {
	ToAll(room *domain.Room, v interface{})
	ToOthers(room *domain.Room, senderID string, v interface{})
	ToOne(conn domain.Sender, v interface{})
}

// Dispatcher 解码入站消息、校验会话状态、变更房间状态并触发相应的广播。
// 同一会话的消息按到达顺序处理完一条再处理下一条；不同连接落在同一房间
// 的消息由房间锁串行化，按应用顺序生效。
type Dispatcher struct {
	registry *registry.Registry
	cast     Broadcaster
}

// NewDispatcher 创建 Dispatcher 实例。
func NewDispatcher(reg *registry.Registry, cast Broadcaster) *Dispatcher {
	if reg == nil {
		panic("Registry cannot be nil for Dispatcher")
	}
	if cast == nil {
		panic("Broadcaster cannot be nil for Dispatcher")
	}
	return &Dispatcher{registry: reg, cast: cast}
}

// Dispatch 处理一条来自 sess 连接的原始消息。
// 坏 JSON 或未知类型只记日志并丢弃，连接保持存活；join 之前的其他消息、
// 以及前置条件不满足的操作均被静默忽略，协议本身没有错误回包。
func (d *Dispatcher) Dispatch(sess *Session, raw []byte) {
	var msg Inbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		logrus.WithError(err).Warn("WebSocket message error: invalid JSON, dropping")
		return
	}

	if msg.Type == TypeJoin {
		d.handleJoin(sess, msg)
		return
	}

	// join 之前的一切消息都是 no-op
	if sess.state != StateJoined {
		return
	}

	switch msg.Type {
	case TypeElementCreate:
		d.handleElementCreate(sess, msg)
	case TypeBoardClear:
		d.handleBoardClear(sess)
	case TypeBoardUndo:
		d.handleBoardUndo(sess)
	case TypePageAdd:
		d.handlePageAdd(sess)
	case TypePageNavigate:
		d.handlePageNavigate(sess, msg)
	case TypePageDelete:
		d.handlePageDelete(sess, msg)
	case TypeCursorMove:
		d.handleCursorMove(sess, msg)
	case TypePageGetAll:
		d.handlePageGetAll(sess)
	case TypePageLoad:
		d.handlePageLoad(sess, msg)
	case TypePageReset:
		d.handlePageReset(sess)
	default:
		logrus.WithField("message_type", msg.Type).Debug("Unknown message type, dropping")
	}
}

// Disconnect 在连接断开或传输出错时调用：把参与者从房间移除并向剩余
// 参与者广播更新后的在线列表。房间本身留给空闲回收，支持快速重连。
func (d *Dispatcher) Disconnect(sess *Session) {
	if sess.state == StateJoined && sess.room != nil {
		if sess.room.RemoveParticipant(sess.participant.ID) {
			logrus.WithFields(logrus.Fields{
				"user_id":    sess.participant.ID,
				"room_id":    sess.room.ID(),
				"room_users": sess.room.ParticipantCount(),
			}).Info("User disconnected from room")
			d.cast.ToAll(sess.room, UsersMsg{Type: TypeUsers, Users: sess.room.Users()})
		}
	}
	sess.state = StateClosed
}

// handleJoin 创建参与者、注册进房间并把会话转入 JOINED。
// 已 join 或已关闭的会话再次收到 join 时忽略。
func (d *Dispatcher) handleJoin(sess *Session, msg Inbound) {
	if sess.state != StateUnjoined {
		return
	}

	username := msg.Username
	if username == "" {
		username = "Anonymous"
	}
	roomID := msg.RoomID
	if roomID == "" {
		roomID = d.registry.GenerateID()
	}
	room := d.registry.GetOrCreate(roomID)

	participant := &domain.Participant{
		ID:       uuid.NewString(),
		Username: username,
		Color:    domain.ColorFromName(username),
		Conn:     sess.conn,
	}
	room.AddParticipant(participant)
	sess.participant = participant
	sess.room = room
	sess.state = StateJoined

	logrus.WithFields(logrus.Fields{
		"username":   username,
		"user_id":    participant.ID,
		"room_id":    roomID,
		"room_users": room.ParticipantCount(),
	}).Info("User joined room")

	d.cast.ToOne(sess.conn, Welcome{
		Type:     TypeWelcome,
		UserID:   participant.ID,
		Username: username,
		Color:    participant.Color,
		RoomID:   roomID,
	})
	d.cast.ToOne(sess.conn, pageStateMsg(room.Snapshot()))
	d.cast.ToAll(room, UsersMsg{Type: TypeUsers, Users: room.Users()})
}

// handleElementCreate 以会话身份盖章 createdBy 后追加元素，并转发给其他人。
func (d *Dispatcher) handleElementCreate(sess *Session, msg Inbound) {
	element := sess.room.AppendElement(sess.participant.ID, msg.Element)
	d.cast.ToOthers(sess.room, sess.participant.ID, ElementCreateMsg{
		Type:    TypeElementCreate,
		Element: element,
	})
	logrus.WithFields(logrus.Fields{
		"user_id": sess.participant.ID,
		"room_id": sess.room.ID(),
	}).Debug("Element created")
}

func (d *Dispatcher) handleBoardClear(sess *Session) {
	sess.room.ClearCurrent()
	d.cast.ToAll(sess.room, BoardClearMsg{Type: TypeBoardClear})
	logrus.WithFields(logrus.Fields{
		"user_id": sess.participant.ID,
		"room_id": sess.room.ID(),
	}).Info("Board cleared")
}

func (d *Dispatcher) handleBoardUndo(sess *Session) {
	state, ok := sess.room.Undo(sess.participant.ID)
	if !ok {
		return
	}
	d.cast.ToAll(sess.room, pageStateMsg(state))
	logrus.WithFields(logrus.Fields{
		"user_id": sess.participant.ID,
		"room_id": sess.room.ID(),
	}).Debug("Undo applied")
}

func (d *Dispatcher) handlePageAdd(sess *Session) {
	state := sess.room.AddPage()
	d.cast.ToAll(sess.room, pageStateMsg(state))
	logrus.WithFields(logrus.Fields{
		"user_id":     sess.participant.ID,
		"room_id":     sess.room.ID(),
		"total_pages": state.TotalPages,
	}).Info("Page added")
}

func (d *Dispatcher) handlePageNavigate(sess *Session, msg Inbound) {
	if msg.PageIndex == nil {
		return
	}
	state, ok := sess.room.Navigate(*msg.PageIndex)
	if !ok {
		return
	}
	d.cast.ToAll(sess.room, pageStateMsg(state))
	logrus.WithFields(logrus.Fields{
		"user_id":    sess.participant.ID,
		"room_id":    sess.room.ID(),
		"page_index": *msg.PageIndex,
	}).Debug("Navigated to page")
}

func (d *Dispatcher) handlePageDelete(sess *Session, msg Inbound) {
	if msg.PageIndex == nil {
		return
	}
	state, ok := sess.room.DeletePage(*msg.PageIndex)
	if !ok {
		return
	}
	d.cast.ToAll(sess.room, pageStateMsg(state))
	logrus.WithFields(logrus.Fields{
		"user_id":     sess.participant.ID,
		"room_id":     sess.room.ID(),
		"page_index":  *msg.PageIndex,
		"total_pages": state.TotalPages,
	}).Info("Page deleted")
}

// handleCursorMove 不变更任何房间状态，位置是瞬态数据，只做转发。
func (d *Dispatcher) handleCursorMove(sess *Session, msg Inbound) {
	d.cast.ToOthers(sess.room, sess.participant.ID, CursorMoveMsg{
		Type:   TypeCursorMove,
		UserID: sess.participant.ID,
		X:      msg.X,
		Y:      msg.Y,
	})
}

func (d *Dispatcher) handlePageGetAll(sess *Session) {
	d.cast.ToOne(sess.conn, AllPagesMsg{Type: TypeAllPages, Pages: sess.room.AllPages()})
	logrus.WithFields(logrus.Fields{
		"user_id": sess.participant.ID,
		"room_id": sess.room.ID(),
	}).Debug("All pages requested")
}

func (d *Dispatcher) handlePageLoad(sess *Session, msg Inbound) {
	state, ok := sess.room.LoadPages(msg.Pages)
	if !ok {
		return
	}
	d.cast.ToAll(sess.room, pageStateMsg(state))
	logrus.WithFields(logrus.Fields{
		"user_id":     sess.participant.ID,
		"room_id":     sess.room.ID(),
		"total_pages": state.TotalPages,
	}).Info("Pages loaded")
}

func (d *Dispatcher) handlePageReset(sess *Session) {
	state := sess.room.Reset()
	d.cast.ToAll(sess.room, pageStateMsg(state))
	logrus.WithFields(logrus.Fields{
		"user_id": sess.participant.ID,
		"room_id": sess.room.ID(),
	}).Info("Pages reset")
}
