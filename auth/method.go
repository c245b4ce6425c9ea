package auth

// AuthMethod identifies one credential scheme the resolver can try.
// The set is closed; order of methods in a Config defines fallback priority.
type AuthMethod string

const (
	// MethodSession is a first-party session token carried in the session cookie.
	MethodSession AuthMethod = "session"

	// MethodWidget is an embeddable-widget token carried as a bearer token
	// with a widget-session marker claim.
	MethodWidget AuthMethod = "widget"

	// MethodAPIKey is a machine-to-machine API key.
	MethodAPIKey AuthMethod = "api_key"

	// MethodBearer is a raw bearer token of unknown flavor.
	MethodBearer AuthMethod = "bearer"

	// MethodQueryToken is a token carried in a query parameter.
	MethodQueryToken AuthMethod = "query_token"

	// MethodCookie is a token carried in the generic token cookie.
	MethodCookie AuthMethod = "cookie"
)

// Valid reports whether m is one of the defined methods.
func (m AuthMethod) Valid() bool {
	switch m {
	case MethodSession, MethodWidget, MethodAPIKey, MethodBearer, MethodQueryToken, MethodCookie:
		return true
	}
	return false
}

// AllMethods returns every defined method in default priority order.
func AllMethods() []AuthMethod {
	return []AuthMethod{
		MethodSession,
		MethodWidget,
		MethodAPIKey,
		MethodBearer,
		MethodQueryToken,
		MethodCookie,
	}
}
