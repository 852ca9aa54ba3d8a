package sqlstore

import (
	"embed"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/memochat-ai/memochat/app/store"
	"github.com/memochat-ai/memochat/pkg/sqlstore"
	"github.com/memochat-ai/memochat/pkg/types"
)

func init() {
	sq.StatementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Provider aggregates all stores over one connection provider. Stores are
// constructed explicitly so request handlers receive them by injection instead
// of reaching for package-level singletons.
type Provider struct {
	*sqlstore.SqlProvider

	resourceStore  *ResourceStore
	embeddingStore *EmbeddingStore
	messageStore   *MessageStore
	toolCallStore  *ToolCallStore
	sessionStore   *SessionStore
	unicornStore   *UnicornStore
}

func MustSetup(m sqlstore.ConnectConfig, s ...sqlstore.ConnectConfig) *Provider {
	provider := &Provider{
		SqlProvider: sqlstore.MustSetupProvider(m, s...),
	}

	provider.resourceStore = NewResourceStore(provider)
	provider.embeddingStore = NewEmbeddingStore(provider)
	provider.messageStore = NewMessageStore(provider)
	provider.toolCallStore = NewToolCallStore(provider)
	provider.sessionStore = NewSessionStore(provider)
	provider.unicornStore = NewUnicornStore(provider)

	return provider
}

func (p *Provider) ResourceStore() store.ResourceStore {
	return p.resourceStore
}

func (p *Provider) EmbeddingStore() store.EmbeddingStore {
	return p.embeddingStore
}

func (p *Provider) MessageStore() store.MessageStore {
	return p.messageStore
}

func (p *Provider) ToolCallStore() store.ToolCallStore {
	return p.toolCallStore
}

func (p *Provider) SessionStore() store.SessionStore {
	return p.sessionStore
}

func (p *Provider) UnicornStore() store.UnicornStore {
	return p.unicornStore
}

// Install 初始化数据库扩展与数据表
func (p *Provider) Install() error {
	if err := p.enableExtensions(); err != nil {
		return err
	}

	if err := p.ensureMigrationTable(); err != nil {
		return err
	}

	files, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return err
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		if executed, err := p.isFileExecuted(file.Name()); err != nil {
			return err
		} else if executed {
			continue
		}

		raw, err := migrationFiles.ReadFile("migrations/" + file.Name())
		if err != nil {
			return err
		}

		if _, err = p.SqlProvider.GetMaster().Exec(string(raw)); err != nil {
			return fmt.Errorf("failed to execute migration %s, %w", file.Name(), err)
		}

		if err = p.markFileExecuted(file.Name()); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) enableExtensions() error {
	extensions := []string{
		"CREATE EXTENSION IF NOT EXISTS vector;", // pgvector 扩展，用于向量操作
	}

	for _, ext := range extensions {
		if _, err := p.SqlProvider.GetMaster().Exec(ext); err != nil {
			return fmt.Errorf("failed to enable extension: %w\nSQL: %s", err, ext)
		}
	}
	return nil
}

func (p *Provider) ensureMigrationTable() error {
	createTableSQL := `
CREATE TABLE IF NOT EXISTS ` + types.TABLE_PREFIX + `schema_migrations (
    filename VARCHAR(255) PRIMARY KEY,
    executed_at BIGINT NOT NULL
);`
	_, err := p.SqlProvider.GetMaster().Exec(createTableSQL)
	return err
}

func (p *Provider) isFileExecuted(filename string) (bool, error) {
	var count int
	err := p.SqlProvider.GetReplica().Get(&count,
		"SELECT COUNT(*) FROM "+types.TABLE_PREFIX+"schema_migrations WHERE filename = $1", filename)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (p *Provider) markFileExecuted(filename string) error {
	_, err := p.SqlProvider.GetMaster().Exec(
		"INSERT INTO "+types.TABLE_PREFIX+"schema_migrations (filename, executed_at) VALUES ($1, $2) ON CONFLICT (filename) DO NOTHING",
		filename, time.Now().Unix())
	return err
}
