package core

import (
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}

	conf.applyDefaults()
	return *conf
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	c.applyDefaults()
	return c
}

type CoreConfig struct {
	Addr     string       `toml:"addr"`
	Log      Log          `toml:"log"`
	Postgres PGConfig     `toml:"postgres"`
	OpenAI   OpenAIConfig `toml:"openai"`
	Auth     AuthConfig   `toml:"auth"`
	Chat     ChatConfig   `toml:"chat"`
}

type OpenAIConfig struct {
	Token          string `toml:"token"`
	Endpoint       string `toml:"endpoint"` // 留空使用官方地址
	ChatModel      string `toml:"chat_model"`
	SQLModel       string `toml:"sql_model"`
	EmbeddingModel string `toml:"embedding_model"`
}

type AuthConfig struct {
	SignKey        string            `toml:"sign_key"`
	SessionTTLDays int               `toml:"session_ttl_days"`
	Github         GithubOAuthConfig `toml:"github"`
}

type GithubOAuthConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURL  string `toml:"redirect_url"`
}

type ChatConfig struct {
	MaxToolSteps      int `toml:"max_tool_steps"`      // 单轮允许的最大工具往返次数
	HistoryTokenLimit int `toml:"history_token_limit"` // 发送给模型前历史消息的token预算
}

func (c *CoreConfig) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.Chat.MaxToolSteps <= 0 {
		c.Chat.MaxToolSteps = 5
	}
	if c.Chat.HistoryTokenLimit <= 0 {
		c.Chat.HistoryTokenLimit = 8000
	}
	if c.Auth.SessionTTLDays <= 0 {
		c.Auth.SessionTTLDays = 30
	}
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("MEMOCHAT_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.Postgres.FromENV()
	c.OpenAI.FromENV()
	c.Auth.FromENV()
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("MEMOCHAT_POSTGRESQL_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

func (c *OpenAIConfig) FromENV() {
	c.Token = os.Getenv("OPENAI_API_KEY")
	c.Endpoint = os.Getenv("OPENAI_API_ENDPOINT")
}

func (c *AuthConfig) FromENV() {
	c.SignKey = os.Getenv("MEMOCHAT_JWT_SIGN_KEY")
	c.Github.ClientID = os.Getenv("MEMOCHAT_GITHUB_CLIENT_ID")
	c.Github.ClientSecret = os.Getenv("MEMOCHAT_GITHUB_CLIENT_SECRET")
	c.Github.RedirectURL = os.Getenv("MEMOCHAT_GITHUB_REDIRECT_URL")
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("MEMOCHAT_LOG_LEVEL")
	l.Path = os.Getenv("MEMOCHAT_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
