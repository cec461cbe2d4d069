// Package services defines the [Catalog] and [Searcher] interfaces and implements them for the catalog backend and the OMDb-style search API.
//
// # Catalog Interface
//
// [Client] wraps the backend REST API. Authenticated endpoints take the bearer
// token as an explicit argument; the client attaches it per request through an
// [oauth2.StaticTokenSource]-built transport so the base [http.Client] stays
// shared. Non-2xx responses become [*APIError] values carrying the status code
// and the backend's "detail" field verbatim when one is present.
//
// # Searcher Interface
//
// [OMDBClient] wraps the external movie-search API. The vendor authenticates
// with an "apikey" query parameter, takes "s" (term) or "i" (exact id)
// queries, and signals lookup failure in-band via Response == "False" rather
// than HTTP status codes. Requests are throttled with [rate.Limiter].
//
// # Error Handling
//
// Clients use typed errors from the shared package:
//   - [shared.ErrAPIRequest] : transport-level failure
//   - [shared.ErrMovieNotFound] : search lookup miss
//   - [shared.ErrMissingCredentials] : search api key not configured
//
// Session-level decisions (missing credential, 401 handling) belong to the
// stores, not to these clients.
package services
