package hub

import (
	"sync"
	"time"

	"github.com/Faizhasan01/Inkify-backend/internal/protocol"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// 包级别的 WebSocket 常量，供客户端读写泵使用。
const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	// 一次 page:load 可能携带整份文档，因此上限要足够宽。
	maxMessageSize = 1 << 20

	// 出站队列长度；写满即丢弃，没有背压协议。
	sendBufferSize = 256
)

// Client 把一条 WebSocket 连接和它的会话状态机绑在一起，
// 负责读入消息交给分发器、以及出站消息的异步写出。
type Client struct {
	conn       *websocket.Conn
	dispatcher *protocol.Dispatcher
	session    *protocol.Session
	send       chan []byte

	mu     sync.Mutex // 保护 closed 与 send 的关闭
	closed bool
}

// NewClient 为一条已升级的连接创建 Client；会话以 UNJOINED 状态开始。
func NewClient(conn *websocket.Conn, dispatcher *protocol.Dispatcher) *Client {
	c := &Client{
		conn:       conn,
		dispatcher: dispatcher,
		send:       make(chan []byte, sendBufferSize),
	}
	c.session = protocol.NewSession(c)
	return c
}

// Run 启动客户端的读写 goroutine。
func (c *Client) Run() {
	go c.WritePump()
	go c.ReadPump()
}

// Send 实现 domain.Sender：非阻塞投递，队列满或连接已关闭时返回 false。
func (c *Client) Send(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// shutdown 关闭出站队列，幂等。之后的 Send 一律返回 false。
func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// ReadPump 把消息从 WebSocket 连接泵送到分发器。
// 一条消息处理完成后才读取下一条，保证同一连接内的到达序。
// 它在自己的 goroutine 中运行，连接断开时负责触发会话的注销。
func (c *Client) ReadPump() {
	defer func() {
		c.dispatcher.Disconnect(c.session)
		c.shutdown()
		c.conn.Close()
		logrus.Debug("readPump exited, session closed")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).Warn("WebSocket read error (unexpected close)")
			} else {
				logrus.Debug("WebSocket connection closed normally or read error")
			}
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}
		// 同步分发：状态变更 + 广播完成后才读下一条
		c.dispatcher.Dispatch(c.session, message)
	}
}

// WritePump 把出站队列中的消息写到 WebSocket 连接，并周期性发送 Ping
// 以探测半开连接。它在自己的 goroutine 中运行。
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		logrus.Debug("writePump exited")
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 出站队列已被 shutdown 关闭
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logrus.WithError(err).Warn("Failed to write message to websocket")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logrus.WithError(err).Warn("Failed to send ping message")
				return
			}
		}
	}
}
