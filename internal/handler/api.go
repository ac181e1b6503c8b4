package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/proofpage/internal/service"
	"github.com/proofpage/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const siteName = "ProofPage"

// Recorder 收集处理器在数据库之外上报的计数。
type Recorder interface {
	service.AnalyticsRecorder
	TestimonialRequested()
}

// Options 配置 NewAPI。
type Options struct {
	SiteBaseURL  string
	SignedURLTTL time.Duration
	Logger       *zap.Logger
	Recorder     Recorder
}

// API 聚合 HTTP 处理器共用的依赖。
type API struct {
	db        *gorm.DB
	auth      *service.AuthService
	pages     *service.PageService
	sections  *service.SectionService
	items     *service.ItemService
	media     *service.MediaService
	requests  *service.RequestService
	analytics *service.AnalyticsService
	dashboard *service.DashboardService
	public    *service.PublicService
	store     storage.Store
	signer    *storage.Signer
	logger    *zap.Logger
	baseURL   string
}

// NewAPI 创建共享各服务的处理器集合。
func NewAPI(db *gorm.DB, store storage.Store, signer *storage.Signer, opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var recorder service.AnalyticsRecorder
	requests := service.NewRequestService(db)
	if opts.Recorder != nil {
		recorder = opts.Recorder
		requests.OnSubmit(opts.Recorder.TestimonialRequested)
	}

	analytics := service.NewAnalyticsService(db, recorder)
	media := service.NewMediaService(db, store, opts.SignedURLTTL)

	return &API{
		db:        db,
		auth:      service.NewAuthService(db),
		pages:     service.NewPageService(db),
		sections:  service.NewSectionService(db),
		items:     service.NewItemService(db),
		media:     media,
		requests:  requests,
		analytics: analytics,
		dashboard: service.NewDashboardService(db, analytics, requests, opts.SiteBaseURL),
		public:    service.NewPublicService(db, media),
		store:     store,
		signer:    signer,
		logger:    logger,
		baseURL:   opts.SiteBaseURL,
	}
}

// DB 暴露底层 gorm 实例，供健康检查使用。
func (a *API) DB() *gorm.DB {
	return a.db
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = siteName
	}
	if _, exists := payload["theme"]; !exists {
		payload["theme"] = "light"
	}
	if _, exists := payload["notice"]; !exists {
		if notice := popNotice(c); notice != nil {
			payload["notice"] = notice
		}
	}
	if _, exists := payload["user"]; !exists {
		if user := currentUser(c); user != nil {
			payload["user"] = user
		}
	}

	c.HTML(status, template, payload)
}

// NotFound 渲染通用的 404 页面。
func (a *API) NotFound(c *gin.Context) {
	a.renderHTML(c, 404, "not_found.html", gin.H{"title": "Not found"})
}

// internalError 记录 err 并返回纯文本 500。
func (a *API) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	a.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.String(500, "Something went wrong. Please try again.")
}
