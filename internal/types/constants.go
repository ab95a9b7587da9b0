package types

// ContextSessionKey is the gin context key holding the request's
// session snapshot.
const ContextSessionKey = "session"

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// Default allowed origins for development; the configured list is
// appended on top.
var DefaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}
