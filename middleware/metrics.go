package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	SuccessfulRequests *prometheus.CounterVec
	BadRequests        *prometheus.CounterVec
	LikesToggled       prometheus.Counter
	FollowsToggled     prometheus.Counter
	PostsCreated       prometheus.Counter
}

func InitMetrics() *Metrics {
	m := &Metrics{
		SuccessfulRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_request",
				Help: "Total number of successful (2xx) HTTP requests",
			},
			[]string{"path"},
		),
		BadRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unsuccessful_request",
				Help: "Total number of unsuccessful (4xx/5xx) HTTP requests",
			},
			[]string{"path"},
		),
		LikesToggled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "likes_toggled",
			Help: "Total number of successful like toggles",
		}),
		FollowsToggled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "follows_toggled",
			Help: "Total number of successful follow toggles",
		}),
		PostsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "posts_created",
			Help: "Total number of posts created",
		}),
	}

	prometheus.MustRegister(m.SuccessfulRequests)
	prometheus.MustRegister(m.BadRequests)
	prometheus.MustRegister(m.LikesToggled)
	prometheus.MustRegister(m.FollowsToggled)
	prometheus.MustRegister(m.PostsCreated)

	return m
}

// Middleware 按路径统计请求结果
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			m.SuccessfulRequests.WithLabelValues(path).Inc()
		} else if status >= 400 {
			m.BadRequests.WithLabelValues(path).Inc()
		}
	}
}
