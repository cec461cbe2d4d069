// Package models defines domain entities and persistence interfaces for the movx catalog client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): structs mirroring the catalog backend's and
// the movie-search API's wire formats
//   - [Credential] : bearer token plus the identity it was issued for
//   - [Movie] : a saved movie record owned by the authenticated user
//   - [Playlist] : playlist metadata, optionally carrying its movie memberships
//   - [SearchResult] / [SearchPage] / [MovieDetail] : movie-search API schema
//
// 2. Persistent Entities: rows of the local export snapshot database
//   - [SnapshotMovie] : a saved movie captured at export time
//   - [SnapshotPlaylist] : a playlist captured at export time
//
// Persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
