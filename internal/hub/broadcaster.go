// Package hub 承载 WebSocket 传输层：连接读写泵和房间内的消息扇出。
package hub

import (
	"encoding/json"

	"github.com/Faizhasan01/Inkify-backend/internal/domain"

	"github.com/sirupsen/logrus"
)

// Broadcaster 实现对房间参与者集合的扇出原语。投递对每个连接都是
// 尽力而为、至多一次：发送队列满或连接已关闭的接收者被直接跳过，
// 绝不阻塞调用方，也绝不影响其余接收者。
type Broadcaster struct{}

// NewBroadcaster 创建 Broadcaster 实例。
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// ToAll 把消息投递给房间内的每一个参与者。
func (b *Broadcaster) ToAll(room *domain.Room, v interface{}) {
	b.deliver(room, "", v)
}

// ToOthers 把消息投递给除 senderID 外的每一个参与者。
func (b *Broadcaster) ToOthers(room *domain.Room, senderID string, v interface{}) {
	b.deliver(room, senderID, v)
}

// ToOne 把消息单播给一条连接。
func (b *Broadcaster) ToOne(conn domain.Sender, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal unicast message")
		return
	}
	if !conn.Send(data) {
		logrus.Warn("Unicast send channel full or closed, message dropped")
	}
}

// deliver 只序列化一次，然后非阻塞地投递给每个符合条件的参与者。
func (b *Broadcaster) deliver(room *domain.Room, excludeID string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logrus.WithError(err).WithField("room_id", room.ID()).Error("Failed to marshal broadcast message")
		return
	}
	for _, p := range room.Participants() {
		if p.ID == excludeID {
			continue
		}
		if !p.Conn.Send(data) {
			logrus.WithFields(logrus.Fields{
				"room_id":          room.ID(),
				"receiver_user_id": p.ID,
			}).Warn("Send channel full or closed during broadcast, skipping this client")
		}
	}
}
