package main

import (
	"log"
	"time"

	"pixelgram/config"
	"pixelgram/handler"
	"pixelgram/middleware"
	"pixelgram/model"
	"pixelgram/service"
	"pixelgram/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// 设置时区为 UTC（推荐服务端统一使用 UTC）
	time.Local = time.UTC
}

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	db, err := utils.OpenDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer utils.CloseDB(db)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.Follow{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化 Redis
	rdb, err := utils.OpenRedis(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	// 失效事件 Hub（订阅跨 Pod 广播）
	hub := handler.NewEventHub(rdb)
	hub.StartPubSub()
	defer hub.StopPubSub()

	// 缓存失效服务
	cacheSvc := service.NewCacheService(rdb)
	cacheSvc.SetNotifier(hub)

	// 创建服务
	authSvc := service.NewAuthService(db)
	userSvc := service.NewUserService(db, cacheSvc)
	postSvc := service.NewPostService(db, cacheSvc)
	commentSvc := service.NewCommentService(db, cacheSvc)
	likeSvc := service.NewLikeService(db, cacheSvc)
	followSvc := service.NewFollowService(db, cacheSvc)
	uploadSvc := service.NewUploadService(cfg)

	// 指标
	metrics := middleware.InitMetrics()

	// 创建处理器
	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	authHandler := handler.NewAuthHandler(authSvc, cfg.JWTSecret, tokenTTL)
	userHandler := handler.NewUserHandler(userSvc)
	postHandler := handler.NewPostHandler(postSvc, metrics)
	commentHandler := handler.NewCommentHandler(commentSvc)
	likeHandler := handler.NewLikeHandler(likeSvc, metrics)
	followHandler := handler.NewFollowHandler(followSvc, metrics)
	uploadHandler := handler.NewUploadHandler(uploadSvc)

	// 创建 Gin 路由
	r := gin.Default()

	// 注册统一错误处理中间件 + 请求指标
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(metrics.Middleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{"status": "ok"})
	})

	// Prometheus 指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 失效事件推送（使用 token 认证，不需要 HTTP 中间件）
	r.GET("/ws", handler.HandleEvents(hub, cfg.JWTSecret))

	// 注册 / 登录
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	// 匿名可访问的读接口 + 资料更新（资料更新自己处理未登录，返回结构化错误）
	public := r.Group("/api/v1")
	public.Use(middleware.OptionalAuthMiddleware(cfg.JWTSecret))
	{
		public.GET("/posts", postHandler.GetFeed)
		public.GET("/users/:username", userHandler.GetProfile)
		public.GET("/users/:username/is-own", userHandler.CheckIsOwnProfile)
		public.PUT("/profile", userHandler.UpdateProfile)
	}

	// 需要认证的写接口
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		api.GET("/me", userHandler.GetCurrentUser)

		// 帖子
		api.POST("/posts", postHandler.CreatePost)
		api.DELETE("/posts/:id", postHandler.DeletePost)
		api.POST("/posts/:id/like", likeHandler.ToggleLike)
		api.POST("/posts/:id/comments", commentHandler.CreateComment)

		// 评论
		api.DELETE("/comments/:id", commentHandler.DeleteComment)

		// 关注
		api.POST("/follows/toggle", followHandler.ToggleFollow)

		// 直传凭证
		api.POST("/uploads/posts", uploadHandler.PresignPostUpload)
		api.POST("/uploads/avatars", uploadHandler.PresignAvatarUpload)
	}

	// 启动服务
	log.Printf("🚀 pixelgram service starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
