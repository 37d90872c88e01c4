package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ljz/netops_go_server/config"
	"github.com/ljz/netops_go_server/internal/api/handler"
	"github.com/ljz/netops_go_server/internal/api/middleware"
)

type Router struct {
	authHandler *handler.AuthHandler
	userHandler *handler.UserHandler
	cfg         *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler: authHandler,
		userHandler: userHandler,
		cfg:         cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// 公开接口 - 用户查询（gin 不允许 :id 与静态段同级，故用复数前缀）
		api.GET("/users/:id", r.userHandler.GetUser)

		// 需要认证的接口
		authenticated := api.Group("/user")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			authenticated.GET("/profile", r.userHandler.GetProfile)
			authenticated.POST("/tokens/adjust", r.userHandler.AdjustTokens)
		}
	}

	return engine
}
