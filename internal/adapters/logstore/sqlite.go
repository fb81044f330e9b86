// Package logstore provides interaction-log store adapters.
// Clean Architecture: Adapter implementing ports.InteractionStore.
package logstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mindfulchat/mindfulchat-go/internal/domain/entities"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore persists interaction records in SQLite. Rows are
// append-only: there is no update path, matching the immutability
// contract of InteractionRecord.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the interaction log database
// under dataPath.
func NewSQLiteStore(dataPath string) (*SQLiteStore, error) {
	if dataPath == "" {
		dataPath = "./data"
	}
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataPath, "interactions.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS interactions (
		id TEXT PRIMARY KEY,
		conversation_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		message TEXT NOT NULL,
		reply TEXT NOT NULL,
		sentiment TEXT NOT NULL,
		is_risk INTEGER NOT NULL DEFAULT 0,
		emotions TEXT NOT NULL DEFAULT '{}',
		keywords TEXT NOT NULL DEFAULT '[]',
		chart TEXT,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_interactions_conversation ON interactions(conversation_id);
	CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions(user_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append writes one record. The primary-key constraint on id rejects
// duplicate writes, so a record can never be silently overwritten.
func (s *SQLiteStore) Append(ctx context.Context, rec *entities.InteractionRecord) error {
	if rec.ID == "" || rec.ConversationID == "" || rec.UserID == "" {
		return fmt.Errorf("interaction record missing identifiers")
	}

	emotionsJSON, err := json.Marshal(rec.Emotions)
	if err != nil {
		return fmt.Errorf("encoding emotions: %w", err)
	}
	keywordsJSON, err := json.Marshal(rec.Keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}
	var chartJSON any
	if rec.Chart != nil {
		b, err := json.Marshal(rec.Chart)
		if err != nil {
			return fmt.Errorf("encoding chart: %w", err)
		}
		chartJSON = string(b)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO interactions (id, conversation_id, user_id, message, reply, sentiment, is_risk, emotions, keywords, chart, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.ConversationID,
		rec.UserID,
		rec.Message,
		rec.Reply,
		string(rec.Sentiment),
		rec.Risk,
		string(emotionsJSON),
		string(keywordsJSON),
		chartJSON,
		rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting interaction: %w", err)
	}
	return nil
}

// RecentByUser returns the newest records for a user, newest first.
func (s *SQLiteStore) RecentByUser(ctx context.Context, userID string, limit int) ([]entities.InteractionRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, conversation_id, user_id, message, reply, sentiment, is_risk, emotions, keywords, chart, created_at
		FROM interactions WHERE user_id = ? ORDER BY created_at DESC LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent interactions: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ByConversation returns a conversation's records ordered by creation time.
func (s *SQLiteStore) ByConversation(ctx context.Context, userID, conversationID string) ([]entities.InteractionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, conversation_id, user_id, message, reply, sentiment, is_risk, emotions, keywords, chart, created_at
		FROM interactions WHERE user_id = ? AND conversation_id = ? ORDER BY created_at ASC
	`, userID, conversationID)
	if err != nil {
		return nil, fmt.Errorf("querying conversation: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ChartsByUser returns records carrying a chart, newest first.
func (s *SQLiteStore) ChartsByUser(ctx context.Context, userID string, limit int) ([]entities.InteractionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, conversation_id, user_id, message, reply, sentiment, is_risk, emotions, keywords, chart, created_at
		FROM interactions WHERE user_id = ? AND chart IS NOT NULL ORDER BY created_at DESC LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying charts: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// CountByConversation reports how many records a conversation holds.
func (s *SQLiteStore) CountByConversation(ctx context.Context, conversationID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM interactions WHERE conversation_id = ?`, conversationID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting conversation records: %w", err)
	}
	return count, nil
}

// DeleteByUser removes all of a user's records. The only delete path;
// used on account removal.
func (s *SQLiteStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM interactions WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting interactions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading delete count: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanRecords(rows *sql.Rows) ([]entities.InteractionRecord, error) {
	var records []entities.InteractionRecord
	for rows.Next() {
		var (
			rec          entities.InteractionRecord
			sentiment    string
			emotionsJSON string
			keywordsJSON string
			chartJSON    sql.NullString
			createdAt    time.Time
		)
		if err := rows.Scan(
			&rec.ID, &rec.ConversationID, &rec.UserID, &rec.Message, &rec.Reply,
			&sentiment, &rec.Risk, &emotionsJSON, &keywordsJSON, &chartJSON, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning interaction: %w", err)
		}

		rec.Sentiment = entities.ParseSentiment(sentiment)
		rec.CreatedAt = createdAt
		if err := json.Unmarshal([]byte(emotionsJSON), &rec.Emotions); err != nil {
			return nil, fmt.Errorf("decoding emotions: %w", err)
		}
		if err := json.Unmarshal([]byte(keywordsJSON), &rec.Keywords); err != nil {
			return nil, fmt.Errorf("decoding keywords: %w", err)
		}
		if chartJSON.Valid {
			var chart entities.HealthChart
			if err := json.Unmarshal([]byte(chartJSON.String), &chart); err != nil {
				return nil, fmt.Errorf("decoding chart: %w", err)
			}
			rec.Chart = &chart
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
