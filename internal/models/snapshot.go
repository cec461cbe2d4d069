package models

import (
	"fmt"
	"time"
)

// SnapshotMovie is a saved movie captured into the local export database.
//
// Implements [Model]. remoteID/remoteCreatedAt preserve the backend's record
// identity; id is local to the snapshot.
type SnapshotMovie struct {
	id              string
	sequence        int
	remoteID        int
	imdbID          string
	title           string
	year            string
	mediaType       string
	poster          string
	ownerID         int
	remoteCreatedAt time.Time
	createdAt       time.Time
	updatedAt       time.Time
	deletedAt       *time.Time
}

// NewSnapshotMovie creates a snapshot row from a backend movie record.
func NewSnapshotMovie(sequence int, m Movie) *SnapshotMovie {
	now := time.Now()
	return &SnapshotMovie{
		sequence:        sequence,
		remoteID:        m.ID,
		imdbID:          m.ImdbID,
		title:           m.Title,
		year:            m.Year,
		mediaType:       m.Type,
		poster:          m.Poster,
		ownerID:         m.OwnerID,
		remoteCreatedAt: m.CreatedDate,
		createdAt:       now,
		updatedAt:       now,
	}
}

func (m *SnapshotMovie) ID() string                 { return m.id }
func (m *SnapshotMovie) Sequence() int              { return m.sequence }
func (m *SnapshotMovie) RemoteID() int              { return m.remoteID }
func (m *SnapshotMovie) ImdbID() string             { return m.imdbID }
func (m *SnapshotMovie) Title() string              { return m.title }
func (m *SnapshotMovie) Year() string               { return m.year }
func (m *SnapshotMovie) MediaType() string          { return m.mediaType }
func (m *SnapshotMovie) Poster() string             { return m.poster }
func (m *SnapshotMovie) OwnerID() int               { return m.ownerID }
func (m *SnapshotMovie) RemoteCreatedAt() time.Time { return m.remoteCreatedAt }
func (m *SnapshotMovie) CreatedAt() time.Time       { return m.createdAt }
func (m *SnapshotMovie) UpdatedAt() time.Time       { return m.updatedAt }
func (m *SnapshotMovie) DeletedAt() *time.Time      { return m.deletedAt }

func (m *SnapshotMovie) SetID(id string)             { m.id = id }
func (m *SnapshotMovie) SetUpdatedAt(t time.Time)    { m.updatedAt = t }
func (m *SnapshotMovie) SetDeletedAt(t *time.Time)   { m.deletedAt = t }
func (m *SnapshotMovie) SetCreatedAt(t time.Time)    { m.createdAt = t }
func (m *SnapshotMovie) SetRemoteCreated(t time.Time) { m.remoteCreatedAt = t }

// Validate checks required fields for persistence.
func (m *SnapshotMovie) Validate() error {
	if m.title == "" {
		return fmt.Errorf("movie title is required")
	}
	if m.imdbID == "" {
		return fmt.Errorf("movie imdb id is required")
	}
	return nil
}

// SnapshotPlaylist is a playlist captured into the local export database.
//
// Implements [Model].
type SnapshotPlaylist struct {
	id              string
	sequence        int
	remoteID        int
	name            string
	ownerID         int
	remoteCreatedAt time.Time
	createdAt       time.Time
	updatedAt       time.Time
	deletedAt       *time.Time
}

// NewSnapshotPlaylist creates a snapshot row from a backend playlist record.
func NewSnapshotPlaylist(sequence int, p Playlist) *SnapshotPlaylist {
	now := time.Now()
	return &SnapshotPlaylist{
		sequence:        sequence,
		remoteID:        p.ID,
		name:            p.Name,
		ownerID:         p.OwnerID,
		remoteCreatedAt: p.CreatedDate,
		createdAt:       now,
		updatedAt:       now,
	}
}

func (p *SnapshotPlaylist) ID() string                 { return p.id }
func (p *SnapshotPlaylist) Sequence() int              { return p.sequence }
func (p *SnapshotPlaylist) RemoteID() int              { return p.remoteID }
func (p *SnapshotPlaylist) Name() string               { return p.name }
func (p *SnapshotPlaylist) OwnerID() int               { return p.ownerID }
func (p *SnapshotPlaylist) RemoteCreatedAt() time.Time { return p.remoteCreatedAt }
func (p *SnapshotPlaylist) CreatedAt() time.Time       { return p.createdAt }
func (p *SnapshotPlaylist) UpdatedAt() time.Time       { return p.updatedAt }
func (p *SnapshotPlaylist) DeletedAt() *time.Time      { return p.deletedAt }

func (p *SnapshotPlaylist) SetID(id string)           { p.id = id }
func (p *SnapshotPlaylist) SetUpdatedAt(t time.Time)  { p.updatedAt = t }
func (p *SnapshotPlaylist) SetDeletedAt(t *time.Time) { p.deletedAt = t }
func (p *SnapshotPlaylist) SetCreatedAt(t time.Time)  { p.createdAt = t }

// Validate checks required fields for persistence.
func (p *SnapshotPlaylist) Validate() error {
	if p.name == "" {
		return fmt.Errorf("playlist name is required")
	}
	return nil
}
