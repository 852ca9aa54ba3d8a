package core

import (
	"io"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/memochat-ai/memochat/app/store/sqlstore"
	"github.com/memochat-ai/memochat/pkg/ai"
	aiopenai "github.com/memochat-ai/memochat/pkg/ai/openai"
	"github.com/memochat-ai/memochat/pkg/auth"
	"github.com/memochat-ai/memochat/pkg/utils"
)

type Core struct {
	cfg CoreConfig

	stores     *sqlstore.Provider
	aiDriver   ai.Driver
	oauth      *auth.GithubProvider
	httpEngine *gin.Engine
	metrics    *Metrics
}

func MustSetupCore(cfg CoreConfig) *Core {
	{
		var writer io.Writer = os.Stdout
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    500, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	utils.SetupIDWorker(1)

	core := &Core{
		cfg:        cfg,
		metrics:    NewMetrics("memochat", "core"),
		httpEngine: gin.New(),
		aiDriver: aiopenai.New(cfg.OpenAI.Token, cfg.OpenAI.Endpoint, aiopenai.ModelName{
			ChatModel:      cfg.OpenAI.ChatModel,
			SQLModel:       cfg.OpenAI.SQLModel,
			EmbeddingModel: cfg.OpenAI.EmbeddingModel,
		}),
		oauth: auth.NewGithubProvider(cfg.Auth.Github.ClientID, cfg.Auth.Github.ClientSecret, cfg.Auth.Github.RedirectURL),
	}

	setupSqlStore(core)

	return core
}

func setupSqlStore(core *Core) {
	core.stores = sqlstore.MustSetup(core.cfg.Postgres)
	if err := core.stores.Install(); err != nil {
		panic(err)
	}
	slog.Info("setupSqlStore done")
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Metrics() *Metrics {
	return s.metrics
}

func (s *Core) Store() *sqlstore.Provider {
	return s.stores
}

func (s *Core) AI() ai.Driver {
	return s.aiDriver
}

func (s *Core) OAuth() *auth.GithubProvider {
	return s.oauth
}
