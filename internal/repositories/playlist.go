package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tobyfell/movx/internal/models"
	"github.com/tobyfell/movx/internal/shared"
)

// PlaylistRepository implements models.Repository[*models.SnapshotPlaylist].
//
// Also owns the playlist_movies membership table; memberships reference
// snapshot row ids, not backend record ids.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new [models.SnapshotPlaylist] into the database with generated ID and sequence
func (r *PlaylistRepository) Create(playlist *models.SnapshotPlaylist) error {
	sequence, err := NextSequence(r.db, "playlists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	playlist.SetID(id)

	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO playlists (id, sequence, remote_id, name, owner_id, remote_created_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		playlist.RemoteID(),
		playlist.Name(),
		playlist.OwnerID(),
		playlist.RemoteCreatedAt(),
		playlist.CreatedAt(),
		playlist.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	return nil
}

// Get retrieves a playlist by ID, excluding soft-deleted playlists
func (r *PlaylistRepository) Get(id string) (*models.SnapshotPlaylist, error) {
	query := `
		SELECT id, sequence, remote_id, name, owner_id, remote_created_at, created_at, updated_at, deleted_at
		FROM playlists
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a playlist by its backend record id
func (r *PlaylistRepository) GetByRemoteID(remoteID int) (*models.SnapshotPlaylist, error) {
	query := `
		SELECT id, sequence, remote_id, name, owner_id, remote_created_at, created_at, updated_at, deleted_at
		FROM playlists
		WHERE remote_id = ? AND deleted_at IS NULL
		LIMIT 1
	`

	return r.scanOne(r.db.QueryRow(query, remoteID))
}

// Update modifies an existing playlist in the database
func (r *PlaylistRepository) Update(playlist *models.SnapshotPlaylist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	playlist.SetUpdatedAt(now)

	query := `
		UPDATE playlists
		SET name = ?, owner_id = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, playlist.Name(), playlist.OwnerID(), now, playlist.ID())
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("playlist not found or already deleted: %s", playlist.ID())
	}

	return nil
}

// Delete soft-deletes a playlist by ID
func (r *PlaylistRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE playlists
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("playlist not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all playlists matching the given criteria, excluding soft-deleted playlists
func (r *PlaylistRepository) List(criteria map[string]any) ([]*models.SnapshotPlaylist, error) {
	query := `
		SELECT id, sequence, remote_id, name, owner_id, remote_created_at, created_at, updated_at, deleted_at
		FROM playlists
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.SnapshotPlaylist
	for rows.Next() {
		playlist, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// AddMembership records a playlist/movie association between snapshot rows.
// Re-recording an existing pair is a no-op.
func (r *PlaylistRepository) AddMembership(playlistID, movieID string) error {
	query := `
		INSERT OR IGNORE INTO playlist_movies (id, playlist_id, movie_id, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, shared.GenerateID(), playlistID, movieID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert membership: %w", err)
	}

	return nil
}

// Memberships returns the snapshot movie ids associated with a playlist row.
func (r *PlaylistRepository) Memberships(playlistID string) ([]string, error) {
	query := `
		SELECT movie_id FROM playlist_movies
		WHERE playlist_id = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	var movieIDs []string
	for rows.Next() {
		var movieID string
		if err := rows.Scan(&movieID); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		movieIDs = append(movieIDs, movieID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return movieIDs, nil
}

type playlistColumns struct {
	id              string
	sequence        int
	remoteID        int
	name            string
	ownerID         sql.NullInt64
	remoteCreatedAt sql.NullTime
	createdAt       time.Time
	updatedAt       time.Time
	deletedAt       sql.NullTime
}

func (c *playlistColumns) build() *models.SnapshotPlaylist {
	dto := models.Playlist{
		ID:      c.remoteID,
		Name:    c.name,
		OwnerID: int(c.ownerID.Int64),
	}
	if c.remoteCreatedAt.Valid {
		dto.CreatedDate = c.remoteCreatedAt.Time
	}

	playlist := models.NewSnapshotPlaylist(c.sequence, dto)
	playlist.SetID(c.id)
	playlist.SetCreatedAt(c.createdAt)
	playlist.SetUpdatedAt(c.updatedAt)
	if c.deletedAt.Valid {
		playlist.SetDeletedAt(&c.deletedAt.Time)
	}

	return playlist
}

// scanOne scans a single [sql.Row] into a [models.SnapshotPlaylist]
func (r *PlaylistRepository) scanOne(row *sql.Row) (*models.SnapshotPlaylist, error) {
	var c playlistColumns

	err := row.Scan(&c.id, &c.sequence, &c.remoteID, &c.name, &c.ownerID, &c.remoteCreatedAt, &c.createdAt, &c.updatedAt, &c.deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("playlist not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	return c.build(), nil
}

// scanRow scans a row from [sql.Rows] into a [models.SnapshotPlaylist]
func (r *PlaylistRepository) scanRow(rows *sql.Rows) (*models.SnapshotPlaylist, error) {
	var c playlistColumns

	err := rows.Scan(&c.id, &c.sequence, &c.remoteID, &c.name, &c.ownerID, &c.remoteCreatedAt, &c.createdAt, &c.updatedAt, &c.deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	return c.build(), nil
}
