// Package catalog provides resource catalog adapters.
// Clean Architecture: Adapter implementing ports.ResourceCatalog.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mindfulchat/mindfulchat-go/internal/domain/entities"
	"github.com/mindfulchat/mindfulchat-go/internal/domain/ports"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteCatalog stores curated resources in SQLite. The catalog is small
// (seeded with a handful of entries), so matching loads all rows and
// filters in Go rather than pushing tag logic into SQL.
type SQLiteCatalog struct {
	db *sql.DB
}

// NewSQLiteCatalog opens (creating if needed) the resource catalog
// database under dataPath.
func NewSQLiteCatalog(dataPath string) (*SQLiteCatalog, error) {
	if dataPath == "" {
		dataPath = "./data"
	}
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataPath, "resources.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	c := &SQLiteCatalog{db: db}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return c, nil
}

func (c *SQLiteCatalog) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS resources (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		type TEXT NOT NULL,
		category TEXT NOT NULL,
		url TEXT NOT NULL,
		tags TEXT NOT NULL DEFAULT '[]'
	);
	CREATE INDEX IF NOT EXISTS idx_resources_category ON resources(category);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Match returns up to limit resources where any keyword appears in the
// tag set or the category equals the sentiment label. Query failures are
// wrapped in ports.ErrCatalogUnavailable so callers can degrade.
func (c *SQLiteCatalog) Match(ctx context.Context, keywords []string, sentiment entities.Sentiment, limit int) ([]entities.Resource, error) {
	all, err := c.loadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrCatalogUnavailable, err)
	}
	return FilterResources(all, keywords, sentiment, limit), nil
}

// SeedIfEmpty inserts resources when the catalog holds none.
func (c *SQLiteCatalog) SeedIfEmpty(ctx context.Context, resources []entities.Resource) error {
	var count int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources`).Scan(&count); err != nil {
		return fmt.Errorf("counting resources: %w", err)
	}
	if count > 0 {
		return nil
	}
	return c.ReplaceAll(ctx, resources)
}

// ReplaceAll swaps the full catalog contents in one transaction.
func (c *SQLiteCatalog) ReplaceAll(ctx context.Context, resources []entities.Resource) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM resources`); err != nil {
		return fmt.Errorf("clearing resources: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO resources (id, title, description, type, category, url, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range resources {
		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		tagsJSON, err := json.Marshal(r.Tags)
		if err != nil {
			return fmt.Errorf("encoding tags: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, id, r.Title, r.Description, r.Type, r.Category, r.URL, string(tagsJSON)); err != nil {
			return fmt.Errorf("inserting resource: %w", err)
		}
	}

	return tx.Commit()
}

// Close closes the underlying database.
func (c *SQLiteCatalog) Close() error {
	return c.db.Close()
}

func (c *SQLiteCatalog) loadAll(ctx context.Context) ([]entities.Resource, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, title, description, type, category, url, tags
		FROM resources ORDER BY title ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []entities.Resource
	for rows.Next() {
		var r entities.Resource
		var tagsJSON string
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.Type, &r.Category, &r.URL, &tagsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tagsJSON), &r.Tags); err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

// FilterResources applies the shared match condition: any keyword in the
// tag set, or category equal to the sentiment label (case-insensitive).
func FilterResources(all []entities.Resource, keywords []string, sentiment entities.Sentiment, limit int) []entities.Resource {
	if limit <= 0 {
		limit = 3
	}

	keywordSet := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		keywordSet[strings.ToLower(kw)] = struct{}{}
	}
	sentimentLabel := strings.ToLower(string(sentiment))

	var matched []entities.Resource
	for _, r := range all {
		if matches(r, keywordSet, sentimentLabel) {
			matched = append(matched, r)
			if len(matched) == limit {
				break
			}
		}
	}
	return matched
}

func matches(r entities.Resource, keywordSet map[string]struct{}, sentimentLabel string) bool {
	for _, tag := range r.Tags {
		if _, ok := keywordSet[strings.ToLower(tag)]; ok {
			return true
		}
	}
	return strings.ToLower(r.Category) == sentimentLabel
}
