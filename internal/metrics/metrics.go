// Package metrics 为证明页服务暴露 Prometheus 计数器。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "proofpage"

// Manager 持有独立的注册表，测试中可以任意创建。
type Manager struct {
	registry *prometheus.Registry

	pageViews          prometheus.Counter
	ctaClicks          prometheus.Counter
	testimonialRequest prometheus.Counter
	backfillRows       *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
}

// NewManager 在新的注册表上注册全部计数器。
func NewManager() *Manager {
	m := &Manager{registry: prometheus.NewRegistry()}
	auto := promauto.With(m.registry)

	m.pageViews = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_views_total",
		Help:      "Total number of public and share page views",
	})
	m.ctaClicks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cta_clicks_total",
		Help:      "Total number of share page CTA clicks",
	})
	m.testimonialRequest = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "testimonial_requests_total",
		Help:      "Total number of testimonials submitted by visitors",
	})
	m.backfillRows = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "backfill",
		Name:      "rows_total",
		Help:      "Rows processed by the thumbnail backfill, by table and outcome",
	}, []string{"table", "outcome"})
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests, by route and status code",
	}, []string{"method", "route", "status"})

	return m
}

// Registry 返回底层注册表。
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// PageViewed 记录一次页面浏览。
func (m *Manager) PageViewed() { m.pageViews.Inc() }

// CTAClicked 记录一次 CTA 点击。
func (m *Manager) CTAClicked() { m.ctaClicks.Inc() }

// TestimonialRequested 记录一次访客提交。
func (m *Manager) TestimonialRequested() { m.testimonialRequest.Inc() }

// BackfillRow 按表和结果记录一行回填。
func (m *Manager) BackfillRow(table, outcome string) {
	m.backfillRows.WithLabelValues(table, outcome).Inc()
}

// Middleware 按匹配到的路由统计请求数，避免路径参数导致标签基数膨胀。
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler 以 Prometheus 文本格式输出注册表。
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
