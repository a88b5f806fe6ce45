package service

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// 渲染页缓存的 key 前缀
const pageKeyPrefix = "page:"

// InvalidateChannel 缓存失效事件的 Pub/Sub channel（跨 Pod 广播）
const InvalidateChannel = "cache:invalidate"

// InvalidationNotifier 接收失效事件并推送给在线客户端（由 WebSocket Hub 实现）
type InvalidationNotifier interface {
	NotifyInvalidated(path string)
}

// CacheService 渲染页缓存失效
// 每次写操作成功后调用，删除已缓存的渲染页并广播失效事件，
// 客户端收到事件后重新拉取数据
type CacheService struct {
	rdb      *redis.Client // 可选，为 nil 时只做本地广播
	notifier InvalidationNotifier
}

func NewCacheService(rdb *redis.Client) *CacheService {
	return &CacheService{rdb: rdb}
}

// SetNotifier 注入本地事件通知器
func (s *CacheService) SetNotifier(n InvalidationNotifier) {
	s.notifier = n
}

// InvalidatePath 使指定路径的缓存页失效
// 失效是尽力而为的：失败只记日志，不影响已完成的写操作
func (s *CacheService) InvalidatePath(path string) {
	if s.rdb != nil {
		ctx := context.Background()
		if err := s.rdb.Del(ctx, pageKeyPrefix+path).Err(); err != nil {
			log.Printf("[WARN] Failed to drop cached page %s: %v", path, err)
		}
		// 通过 Pub/Sub 广播，各 Pod 的 Hub 订阅后推送给自己的客户端
		if err := s.rdb.Publish(ctx, InvalidateChannel, path).Err(); err != nil {
			log.Printf("[WARN] Failed to publish invalidation for %s: %v", path, err)
		}
		return
	}

	if s.notifier != nil {
		s.notifier.NotifyInvalidated(path)
	}
}

// InvalidateLayout 布局级失效：首页和所有个人主页都依赖被修改的数据
func (s *CacheService) InvalidateLayout() {
	s.InvalidatePath("/")
}
