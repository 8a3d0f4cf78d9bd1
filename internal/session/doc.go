// Package session is the client's only path to the backend.
//
// A [Gateway] sends requests relative to the API base URL with the session cookies carried by a
// [Jar]. When a call is rejected with 401 the gateway asks the backend to refresh the session and
// replays that call once. If the refresh fails, the [Store] flips to [Unauthenticated] and the
// [Navigator] is sent to the login route.
//
// The store starts in [Loading] until [Gateway.ProbeStatus] answers, and never returns to it.
package session
