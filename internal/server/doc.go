// Package server provides HTTP routing, middleware, and a development backend for the notes API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns, so "GET /notes/{$}" and
// "POST /notes/{$}" may be served by different handlers.
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Development Backend
//
// [Backend] stands in for the hosted service when working offline:
//   - POST auth/login/, auth/register/, auth/refresh/, auth/logout/ and GET auth/status/
//   - GET and POST notes/, GET and DELETE notes/{id}/
//
// Sessions are HS256 tokens carried in HttpOnly access_token and refresh_token cookies.
// A refresh rotates both cookies and revokes the old refresh token; logout revokes and clears them.
//
// Users and notes live in memory and vanish on restart. Notes come from a [Generator];
// [StubGenerator] derives deterministic content from the video id.
package server
