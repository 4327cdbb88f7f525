package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"transcriptor/internal/config"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "catalog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the location of the backing database file.
func (s *Store) Path() string {
	return s.path
}

// Add inserts a new resource keyed by URL. A duplicate URL fails with
// ErrDuplicateURL; existing rows are never overwritten.
func (s *Store) Add(ctx context.Context, url, title string, kind Kind) (*Resource, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("resource url is required")
	}
	if kind == "" {
		kind = KindVideo
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO streaming_resources (
            external_id, url, title, kind, status, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		url,
		nullableString(title),
		string(kind),
		StatusPending,
		timestamp,
		timestamp,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateURL, url)
		}
		return nil, fmt.Errorf("insert resource: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a resource by identifier. A missing row yields (nil, nil).
func (s *Store) GetByID(ctx context.Context, id int64) (*Resource, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+resourceColumns+` FROM streaming_resources WHERE id = ?`, id)
	resource, err := scanResource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get resource: %w", err)
	}
	return resource, nil
}

// GetByURL fetches the resource with the given URL, or (nil, nil).
func (s *Store) GetByURL(ctx context.Context, url string) (*Resource, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+resourceColumns+` FROM streaming_resources WHERE url = ?`, strings.TrimSpace(url))
	resource, err := scanResource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get resource by url: %w", err)
	}
	return resource, nil
}

// Update persists changes to an existing resource.
func (s *Store) Update(ctx context.Context, resource *Resource) error {
	if resource == nil {
		return errors.New("resource is nil")
	}
	if !ValidStatus(resource.Status) {
		return fmt.Errorf("unknown status %q", resource.Status)
	}
	resource.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE streaming_resources
         SET title = ?, kind = ?, status = ?, local_path = ?, final_path = ?,
             duration_seconds = ?, error_message = ?, updated_at = ?
         WHERE id = ?`,
		nullableString(resource.Title),
		string(resource.Kind),
		resource.Status,
		nullableString(resource.LocalPath),
		nullableString(resource.FinalPath),
		resource.DurationSeconds,
		nullableString(resource.ErrorMessage),
		resource.UpdatedAt.Format(time.RFC3339Nano),
		resource.ID,
	)
	if err != nil {
		return fmt.Errorf("update resource: %w", err)
	}
	return nil
}

// List returns resources filtered by status set (or all resources when no
// status is provided), ordered by creation time.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Resource, error) {
	var (
		rows *sql.Rows
		err  error
	)

	baseQuery := `SELECT ` + resourceColumns + ` FROM streaming_resources`
	orderClause := ` ORDER BY created_at`

	if len(statuses) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		placeholders := makePlaceholders(len(statuses))
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = status
		}
		query := baseQuery + ` WHERE status IN (` + placeholders + `)` + orderClause
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	var resources []*Resource
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, resource)
	}
	return resources, rows.Err()
}

// Remove deletes a resource by identifier.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM streaming_resources WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete resource: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// ResetStuckProcessing returns resources stuck in processing states to pending.
func (s *Store) ResetStuckProcessing(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE streaming_resources SET status = ?, updated_at = ? WHERE status IN (?, ?)`,
		StatusPending,
		time.Now().UTC().Format(time.RFC3339Nano),
		StatusDownloading,
		StatusOrganizing,
	)
	if err != nil {
		return 0, fmt.Errorf("reset stuck resources: %w", err)
	}
	return res.RowsAffected()
}

// ClearCompleted removes only completed resources from the catalog.
func (s *Store) ClearCompleted(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM streaming_resources WHERE status = ?`, StatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("clear completed: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns a count of resources grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM streaming_resources GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("catalog stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// Health aggregates catalog state for diagnostic output.
func (s *Store) Health(ctx context.Context) (HealthSummary, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return HealthSummary{}, err
	}
	health := HealthSummary{}
	for status, count := range stats {
		health.Total += count
		switch status {
		case StatusPending:
			health.Pending += count
		case StatusFailed:
			health.Failed += count
		case StatusReview:
			health.Review += count
		case StatusCompleted:
			health.Completed += count
		default:
			if _, ok := processingStatuses[status]; ok {
				health.Processing += count
			}
		}
	}
	return health, nil
}

const resourceColumns = "id, external_id, url, title, kind, status, local_path, final_path, duration_seconds, error_message, created_at, updated_at"

func scanResource(scanner interface{ Scan(dest ...any) error }) (*Resource, error) {
	var (
		id         int64
		externalID string
		url        string
		title      sql.NullString
		kindStr    string
		statusStr  string
		localPath  sql.NullString
		finalPath  sql.NullString
		duration   sql.NullFloat64
		errMessage sql.NullString
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&externalID,
		&url,
		&title,
		&kindStr,
		&statusStr,
		&localPath,
		&finalPath,
		&duration,
		&errMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	resource := &Resource{
		ID:              id,
		ExternalID:      externalID,
		URL:             url,
		Title:           title.String,
		Kind:            Kind(kindStr),
		Status:          Status(statusStr),
		LocalPath:       localPath.String,
		FinalPath:       finalPath.String,
		DurationSeconds: duration.Float64,
		ErrorMessage:    errMessage.String,
	}

	created, err := parseTimeString(createdRaw.String)
	if err != nil {
		return nil, fmt.Errorf("resource %d: parse created_at %q: %w", id, createdRaw.String, err)
	}
	updated, err := parseTimeString(updatedRaw.String)
	if err != nil {
		return nil, fmt.Errorf("resource %d: parse updated_at %q: %w", id, updatedRaw.String, err)
	}
	resource.CreatedAt = created
	resource.UpdatedAt = updated
	return resource, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
