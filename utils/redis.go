package utils

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// OpenRedis 创建 Redis 客户端并测试连接
// 返回客户端由调用方持有并注入各服务
func OpenRedis(url, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     url,
		Password: password,
		DB:       db,
	})

	// 测试连接
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Println("Redis connected")
	return rdb, nil
}
