package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"frameworks/api_detector/internal/models"
)

// AnalysisStore is the persistence contract for analysis results: keyed
// lookup by fingerprint, append-only insert, and a recency-ordered
// history view.
type AnalysisStore interface {
	// FindByFingerprint returns the record for a content hash, or nil
	// when no record exists.
	FindByFingerprint(ctx context.Context, contentHash string) (*models.AnalysisRecord, error)
	// Insert writes a new record together with the raw document text.
	// On a fingerprint collision the existing record wins and the
	// insert is a no-op.
	Insert(ctx context.Context, record models.AnalysisRecord, content string) error
	// ListRecent returns up to limit items newest-first, optionally
	// filtered by author, plus the total matching count.
	ListRecent(ctx context.Context, limit, offset int, author string) ([]models.HistoryItem, int64, error)
}

// SQLAnalysisStore implements AnalysisStore on PostgreSQL.
type SQLAnalysisStore struct {
	db *sql.DB
}

func NewAnalysisStore(db *sql.DB) *SQLAnalysisStore {
	return &SQLAnalysisStore{db: db}
}

const recordColumns = `id, content_hash, platform, post_id, author,
		score, confidence, label, llm_score, heuristic_score,
		signals, created_at`

func (s *SQLAnalysisStore) FindByFingerprint(ctx context.Context, contentHash string) (*models.AnalysisRecord, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("analysis store unavailable")
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM analyses
		WHERE content_hash = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, contentHash)

	var record models.AnalysisRecord
	var postID, author sql.NullString
	var llmScore sql.NullInt64
	err := row.Scan(
		&record.ID,
		&record.ContentHash,
		&record.Platform,
		&postID,
		&author,
		&record.Score,
		&record.Confidence,
		&record.Label,
		&llmScore,
		&record.HeuristicScore,
		&record.Signals,
		&record.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find analysis by fingerprint: %w", err)
	}

	record.PostID = postID.String
	record.Author = author.String
	if llmScore.Valid {
		score := int(llmScore.Int64)
		record.LlmScore = &score
	}
	return &record, nil
}

func (s *SQLAnalysisStore) Insert(ctx context.Context, record models.AnalysisRecord, content string) error {
	if s == nil || s.db == nil {
		return errors.New("analysis store unavailable")
	}

	var llmScore sql.NullInt64
	if record.LlmScore != nil {
		llmScore = sql.NullInt64{Int64: int64(*record.LlmScore), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (
			id, content_hash, content, platform, post_id, author,
			score, confidence, label, llm_score, heuristic_score,
			signals, created_at
		)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (content_hash) DO NOTHING
	`,
		record.ID,
		record.ContentHash,
		content,
		record.Platform,
		record.PostID,
		record.Author,
		record.Score,
		record.Confidence,
		record.Label,
		llmScore,
		record.HeuristicScore,
		record.Signals,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

func (s *SQLAnalysisStore) ListRecent(ctx context.Context, limit, offset int, author string) ([]models.HistoryItem, int64, error) {
	if s == nil || s.db == nil {
		return nil, 0, errors.New("analysis store unavailable")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, SUBSTR(content, 1, 150) AS content_preview, platform, post_id, author,
			score, confidence, label, llm_score, heuristic_score,
			signals, created_at
		FROM analyses
		WHERE ($3 = '' OR author = $3)
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset, author)
	if err != nil {
		return nil, 0, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	items := make([]models.HistoryItem, 0, limit)
	for rows.Next() {
		var item models.HistoryItem
		var postID, authorCol sql.NullString
		var llmScore sql.NullInt64
		if err := rows.Scan(
			&item.ID,
			&item.ContentPreview,
			&item.Platform,
			&postID,
			&authorCol,
			&item.Score,
			&item.Confidence,
			&item.Label,
			&llmScore,
			&item.HeuristicScore,
			&item.Signals,
			&item.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan analysis row: %w", err)
		}
		item.PostID = postID.String
		item.Author = authorCol.String
		if llmScore.Valid {
			score := int(llmScore.Int64)
			item.LlmScore = &score
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate analysis rows: %w", err)
	}

	var total int64
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM analyses WHERE ($1 = '' OR author = $1)
	`, author).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count analyses: %w", err)
	}

	return items, total, nil
}
