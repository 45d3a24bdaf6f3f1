package protocol

import "github.com/Faizhasan01/Inkify-backend/internal/domain"

// State 是单条连接的会话状态。
type State int

const (
	// StateUnjoined 表示连接已建立但尚未 join；除 join 外的消息一律忽略。
	StateUnjoined State = iota
	// StateJoined 表示连接已绑定到某个房间的参与者身份。
	StateJoined
	// StateClosed 是终态，断开后进入。
	StateClosed
)

// Session 是每条连接的会话状态机。它只被该连接的读取 goroutine 访问，
// 一条消息处理完成后才会读取下一条，因此不需要加锁。
type Session struct {
	conn        domain.Sender
	state       State
	participant *domain.Participant
	room        *domain.Room
}

// NewSession 为一条新连接创建 UNJOINED 状态的会话。
func NewSession(conn domain.Sender) *Session {
	return &Session{conn: conn, state: StateUnjoined}
}

// State 返回当前会话状态。
func (s *Session) State() State { return s.state }

// Participant 返回会话绑定的参与者，未 join 时为 nil。
func (s *Session) Participant() *domain.Participant { return s.participant }

// Room 返回会话所在的房间，未 join 时为 nil。
func (s *Session) Room() *domain.Room { return s.room }
