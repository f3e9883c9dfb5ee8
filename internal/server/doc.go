// Package server provides HTTP routing, middleware, and the inbound surface of the playback service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with Go 1.22 method/wildcard patterns.
//
// # Handlers
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib
// handler interface and adds route patterns, allowing each handler to
// encapsulate its own route definitions:
//
//   - [AdminHandler] : GET /admin/auth (redirect to consent screen) and
//     GET /admin/callback (authorization-code exchange)
//   - [SpotifyHandler] : the read/control resource endpoints under /spotify,
//     gated on a stored credential
//   - [HealthHandler] : GET /up liveness probe
//
// # Error Mapping
//
// renderError is the single place the shared error taxonomy becomes response
// statuses: authentication-class failures are 401 with an auth_url hint,
// entitlement gaps 403, missing resources 404, validation failures 400, and
// everything else 500. Error bodies are always {error, message} JSON.
package server
