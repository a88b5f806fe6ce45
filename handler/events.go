package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"pixelgram/middleware"
	"pixelgram/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: 生产环境需要检查 Origin
		return true
	},
}

// EventClient 一条 WebSocket 连接
type EventClient struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
	mu     sync.Mutex
	closed bool // Send channel 是否已关闭
}

func (c *EventClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// InvalidationEvent 推送给客户端的缓存失效事件
// 客户端收到后重新拉取对应页面的数据
type InvalidationEvent struct {
	Type string `json:"type"` // 固定 "invalidate"
	Path string `json:"path"`
}

// EventHub 失效事件广播中心
// 写操作触发缓存失效后，把事件推给所有在线客户端；
// 多 Pod 部署时通过 Redis Pub/Sub 把事件同步到其它 Pod
type EventHub struct {
	clients map[uuid.UUID]*EventClient
	mu      sync.RWMutex

	rdb *redis.Client // 可选，为 nil 时只做本地广播

	stopPubSub chan struct{}
}

func NewEventHub(rdb *redis.Client) *EventHub {
	return &EventHub{
		clients:    make(map[uuid.UUID]*EventClient),
		rdb:        rdb,
		stopPubSub: make(chan struct{}),
	}
}

func (h *EventHub) register(client *EventClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
}

func (h *EventHub) unregister(client *EventClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		client.close()
	}
}

// NotifyInvalidated 把失效事件广播给本 Pod 的所有客户端
// 实现 service.InvalidationNotifier
func (h *EventHub) NotifyInvalidated(path string) {
	payload, err := json.Marshal(InvalidationEvent{Type: "invalidate", Path: path})
	if err != nil {
		log.Printf("[ERROR] Failed to marshal invalidation event: %v", err)
		return
	}

	h.mu.RLock()
	clientsCopy := make([]*EventClient, 0, len(h.clients))
	for _, client := range h.clients {
		clientsCopy = append(clientsCopy, client)
	}
	h.mu.RUnlock()

	for _, client := range clientsCopy {
		select {
		case client.Send <- payload:
		default:
			// 发送缓冲满说明客户端已卡死，直接踢掉
			h.unregister(client)
		}
	}
}

// StartPubSub 订阅跨 Pod 的失效事件
func (h *EventHub) StartPubSub() {
	if h.rdb == nil {
		return
	}

	go func() {
		ctx := context.Background()
		pubsub := h.rdb.Subscribe(ctx, service.InvalidateChannel)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-h.stopPubSub:
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				h.NotifyInvalidated(msg.Payload)
			}
		}
	}()
}

// StopPubSub 停止订阅
func (h *EventHub) StopPubSub() {
	close(h.stopPubSub)
}

// HandleEvents WebSocket 入口（token 通过 query 参数认证）
func HandleEvents(hub *EventHub, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		userID, err := middleware.ValidateToken(jwtSecret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ERROR] Failed to upgrade websocket: %v", err)
			return
		}

		client := &EventClient{
			ID:     uuid.New(),
			UserID: userID,
			Conn:   conn,
			Send:   make(chan []byte, 16),
		}
		hub.register(client)

		go writePump(client)
		go readPump(hub, client)
	}
}

func writePump(client *EventClient) {
	defer client.Conn.Close()

	for payload := range client.Send {
		client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := client.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// readPump 只消费控制帧，客户端不会主动发消息；读出错即断开
func readPump(hub *EventHub, client *EventClient) {
	defer hub.unregister(client)

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
