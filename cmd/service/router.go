package service

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/memochat-ai/memochat/app/core"
	"github.com/memochat-ai/memochat/app/response"
	"github.com/memochat-ai/memochat/cmd/service/handler"
	"github.com/memochat-ai/memochat/cmd/service/middleware"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func setupHttpRouter(s *handler.HttpSrv) {
	s.Engine.Use(middleware.Cors, response.NewResponse())

	s.Engine.GET("/metrics", func(c *gin.Context) {
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})

	s.Engine.GET("/login/github", s.LoginWithGithub)
	s.Engine.GET("/login/github/callback", s.LoginWithGithubCallback)

	api := s.Engine.Group("/api")
	api.Use(middleware.Authorization(s.Core))
	{
		api.POST("/chat", s.Chat)
		api.GET("/chat/:chatid/history", s.ChatHistory)

		query := api.Group("/query")
		{
			query.POST("/generate", s.GenerateQuery)
			query.POST("/execute", s.ExecuteQuery)
		}

		resource := api.Group("/resource")
		{
			resource.POST("", s.CreateResource)
			resource.GET("/list", s.ListResources)
			resource.DELETE("/:id", s.DeleteResource)
			resource.POST("/:id/rebuild", s.RebuildResource)
			resource.GET("/search", s.SearchMemory)
		}

		api.POST("/logout", s.Logout)
	}
}
