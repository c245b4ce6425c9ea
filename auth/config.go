package auth

// Config is the declarative resolution policy. Configs are constructed once
// per process or per named route class and must not be mutated afterwards;
// the resolver only reads them.
type Config struct {
	// Methods is the ordered list of schemes to attempt. Order is a
	// security-relevant choice: the first method that fully qualifies
	// wins, so placing api_key before session changes which identity is
	// resolved when both credentials are present.
	Methods []AuthMethod

	// Required makes a failed resolution terminal for the route. When
	// false the terminal failure message differs but resolution still
	// reports failure; optional-auth behavior lives in the middleware.
	Required bool

	// RequireOrganization rejects results that carry no organization id.
	RequireOrganization bool

	// RequiredPermissions, when non-empty, requires the identity to hold
	// at least one of the listed permissions (any-of, not all-of).
	RequiredPermissions []string

	// FailFastOnConstraint makes an organization or permission constraint
	// violation terminal instead of falling through to the next method.
	// The zero value preserves the historical fallthrough behavior: a
	// validly-authenticated but under-constrained candidate is skipped
	// and later methods still get a chance to qualify.
	FailFastOnConstraint bool

	// SkipExpiration disables expiry enforcement on the quick-check path.
	// Intended for internal test harnesses only, never production routes.
	SkipExpiration bool

	// Debug enables per-method failure logging.
	Debug bool
}

// DashboardConfig is the policy for first-party dashboard routes.
func DashboardConfig() Config {
	return Config{
		Methods:             []AuthMethod{MethodSession, MethodCookie},
		Required:            true,
		RequireOrganization: true,
	}
}

// WidgetConfig is the policy for embeddable-widget routes.
func WidgetConfig() Config {
	return Config{
		Methods:             []AuthMethod{MethodWidget, MethodBearer},
		Required:            true,
		RequireOrganization: true,
	}
}

// APIConfig is the policy for machine-to-machine API routes.
func APIConfig() Config {
	return Config{
		Methods:             []AuthMethod{MethodAPIKey, MethodBearer},
		Required:            true,
		RequireOrganization: true,
	}
}

// FlexibleConfig is the policy for routes that accept any credential scheme.
func FlexibleConfig() Config {
	return Config{
		Methods:  AllMethods(),
		Required: true,
	}
}
