// Package websocket 负责把 HTTP 请求升级为 WebSocket 连接并启动客户端。
package websocket

import (
	"net/http"

	"github.com/Faizhasan01/Inkify-backend/internal/hub"
	"github.com/Faizhasan01/Inkify-backend/internal/protocol"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Handler 负责处理 WebSocket 升级请求。
// 连接升级后以 UNJOINED 会话启动；房间归属由随后的 join 消息决定，
// 参与白板不需要认证，只需要一个显示名。
type Handler struct {
	upgrader   websocket.Upgrader
	dispatcher *protocol.Dispatcher
}

// NewHandler 创建 WebSocket Handler 实例。
func NewHandler(dispatcher *protocol.Dispatcher) *Handler {
	if dispatcher == nil {
		panic("Dispatcher cannot be nil for websocket Handler")
	}
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 允许所有来源连接 (生产环境应配置具体的允许来源)
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		dispatcher: dispatcher,
	}
}

// HandleConnection 把请求升级为 WebSocket 并启动客户端的读写泵。
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失败时已自动发送 HTTP 错误响应，这里只记录日志
		logrus.WithError(err).Error("WS Handler: failed to upgrade connection")
		return
	}
	logrus.Debug("WS Handler: connection upgraded to WebSocket")

	client := hub.NewClient(conn, h.dispatcher)
	client.Run()
}
