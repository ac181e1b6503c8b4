package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/proofpage/internal/db"
	"github.com/proofpage/internal/handler"
	"github.com/proofpage/internal/logging"
	"github.com/proofpage/internal/metrics"
	"github.com/proofpage/internal/ratelimit"
	"github.com/proofpage/internal/view"
	"go.uber.org/zap"
)

const sessionName = "proofpage_session"

// Options 汇总路由层需要的可选依赖。
type Options struct {
	SessionSecret string
	// Limiter 限制公开推荐语的提交频率，为 nil 时不限流。
	Limiter ratelimit.Limiter
	Metrics *metrics.Manager
	Logger  *zap.Logger
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) (*gin.Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}

	// 配置会话中间件
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 30 * 24 * 60 * 60, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(api.LoadUser())

	templates, err := view.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(templates)

	r.GET("/healthz", func(c *gin.Context) {
		if err := db.Ping(api.DB()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})

	guest := r.Group("")
	guest.Use(handler.GuestOnly())
	{
		guest.GET("/login", api.ShowLogin)
		guest.POST("/login", api.Login)
		guest.GET("/signup", api.ShowSignup)
		guest.POST("/signup", api.Signup)
	}
	r.POST("/logout", api.Logout)

	// 公开页面
	r.GET("/p/:slug", api.ShowPublicPage)
	r.GET("/p/:slug/share", api.ShowSharePage)
	r.GET("/p/:slug/share/cta", api.FollowCTA)
	r.GET("/r/:slug", api.ShowRequestForm)
	r.POST("/r/:slug",
		ratelimit.Middleware(opts.Limiter, ratelimit.ByIPAndRoute, logger, api.RequestRateLimited),
		api.SubmitRequest)
	r.GET("/media/:bucket/*path", api.ServeMedia)

	// 需要登录的编辑路由
	dash := r.Group("/dashboard")
	dash.Use(handler.AuthRequired())
	{
		dash.GET("", api.Dashboard)
		dash.POST("/page", api.UpdatePage)

		dash.POST("/sections", api.CreateSection)
		dash.POST("/sections/:id/move", api.MoveSection)
		dash.POST("/sections/:id/delete", api.DeleteSection)
		dash.POST("/sections/:id/testimonials", api.CreateTestimonial)
		dash.POST("/sections/:id/work-examples", api.CreateWorkExample)
		dash.POST("/sections/:id/metrics", api.CreateMetric)

		dash.POST("/testimonials/:id", api.UpdateTestimonial)
		dash.POST("/testimonials/:id/delete", api.DeleteTestimonial)
		dash.POST("/testimonials/:id/avatar", api.UploadAvatar)

		dash.POST("/work-examples/:id", api.UpdateWorkExample)
		dash.POST("/work-examples/:id/delete", api.DeleteWorkExample)
		dash.POST("/work-examples/:id/image", api.UploadWorkImage)

		dash.POST("/metrics/:id", api.UpdateMetric)
		dash.POST("/metrics/:id/delete", api.DeleteMetric)

		dash.POST("/requests/:id/approve", api.ApproveRequest)
		dash.POST("/requests/:id/reject", api.RejectRequest)
	}

	r.NoRoute(api.NotFound)

	return r, nil
}
