package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tobyfell/movx/internal/models"
	"github.com/tobyfell/movx/internal/shared"
)

// MovieRepository implements models.Repository[*models.SnapshotMovie].
//
// Handles snapshot persistence with soft delete support and remote-id lookups
// so repeated export runs update rows instead of duplicating them.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new MovieRepository with the given database connection
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create inserts a new [models.SnapshotMovie] into the database with generated ID and sequence
func (r *MovieRepository) Create(movie *models.SnapshotMovie) error {
	sequence, err := NextSequence(r.db, "movies")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	movie.SetID(id)

	if err := movie.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO movies (id, sequence, remote_id, imdb_id, title, year, media_type, poster, owner_id, remote_created_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		movie.RemoteID(),
		movie.ImdbID(),
		movie.Title(),
		movie.Year(),
		movie.MediaType(),
		movie.Poster(),
		movie.OwnerID(),
		movie.RemoteCreatedAt(),
		movie.CreatedAt(),
		movie.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}

	return nil
}

// Get retrieves a movie by ID, excluding soft-deleted movies
func (r *MovieRepository) Get(id string) (*models.SnapshotMovie, error) {
	query := `
		SELECT id, sequence, remote_id, imdb_id, title, year, media_type, poster, owner_id, remote_created_at, created_at, updated_at, deleted_at
		FROM movies
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a movie by its backend record id
func (r *MovieRepository) GetByRemoteID(remoteID int) (*models.SnapshotMovie, error) {
	query := `
		SELECT id, sequence, remote_id, imdb_id, title, year, media_type, poster, owner_id, remote_created_at, created_at, updated_at, deleted_at
		FROM movies
		WHERE remote_id = ? AND deleted_at IS NULL
		LIMIT 1
	`

	return r.scanOne(r.db.QueryRow(query, remoteID))
}

// Update modifies an existing movie in the database
func (r *MovieRepository) Update(movie *models.SnapshotMovie) error {
	if err := movie.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	movie.SetUpdatedAt(now)

	query := `
		UPDATE movies
		SET imdb_id = ?, title = ?, year = ?, media_type = ?, poster = ?, owner_id = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		movie.ImdbID(),
		movie.Title(),
		movie.Year(),
		movie.MediaType(),
		movie.Poster(),
		movie.OwnerID(),
		now,
		movie.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("movie not found or already deleted: %s", movie.ID())
	}

	return nil
}

// Delete soft-deletes a movie by ID
func (r *MovieRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE movies
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("movie not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all movies matching the given criteria, excluding soft-deleted movies
func (r *MovieRepository) List(criteria map[string]any) ([]*models.SnapshotMovie, error) {
	query := `
		SELECT id, sequence, remote_id, imdb_id, title, year, media_type, poster, owner_id, remote_created_at, created_at, updated_at, deleted_at
		FROM movies
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if imdbID, ok := criteria["imdb_id"].(string); ok && imdbID != "" {
		query += " AND imdb_id = ?"
		args = append(args, imdbID)
	}

	if mediaType, ok := criteria["media_type"].(string); ok && mediaType != "" {
		query += " AND media_type = ?"
		args = append(args, mediaType)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	var movies []*models.SnapshotMovie
	for rows.Next() {
		movie, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return movies, nil
}

type movieColumns struct {
	id              string
	sequence        int
	remoteID        int
	imdbID          string
	title           string
	year            sql.NullString
	mediaType       sql.NullString
	poster          sql.NullString
	ownerID         sql.NullInt64
	remoteCreatedAt sql.NullTime
	createdAt       time.Time
	updatedAt       time.Time
	deletedAt       sql.NullTime
}

func (c *movieColumns) build() *models.SnapshotMovie {
	dto := models.Movie{
		ID:      c.remoteID,
		ImdbID:  c.imdbID,
		Title:   c.title,
		Year:    c.year.String,
		Type:    c.mediaType.String,
		Poster:  c.poster.String,
		OwnerID: int(c.ownerID.Int64),
	}
	if c.remoteCreatedAt.Valid {
		dto.CreatedDate = c.remoteCreatedAt.Time
	}

	movie := models.NewSnapshotMovie(c.sequence, dto)
	movie.SetID(c.id)
	movie.SetCreatedAt(c.createdAt)
	movie.SetUpdatedAt(c.updatedAt)
	if c.deletedAt.Valid {
		movie.SetDeletedAt(&c.deletedAt.Time)
	}

	return movie
}

// scanOne scans a single [sql.Row] into a [models.SnapshotMovie]
func (r *MovieRepository) scanOne(row *sql.Row) (*models.SnapshotMovie, error) {
	var c movieColumns

	err := row.Scan(&c.id, &c.sequence, &c.remoteID, &c.imdbID, &c.title, &c.year, &c.mediaType, &c.poster, &c.ownerID, &c.remoteCreatedAt, &c.createdAt, &c.updatedAt, &c.deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("movie not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}

	return c.build(), nil
}

// scanRow scans a row from [sql.Rows] into a [models.SnapshotMovie]
func (r *MovieRepository) scanRow(rows *sql.Rows) (*models.SnapshotMovie, error) {
	var c movieColumns

	err := rows.Scan(&c.id, &c.sequence, &c.remoteID, &c.imdbID, &c.title, &c.year, &c.mediaType, &c.poster, &c.ownerID, &c.remoteCreatedAt, &c.createdAt, &c.updatedAt, &c.deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}

	return c.build(), nil
}
