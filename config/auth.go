package config

import "time"

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour

	minBcryptCost = 4
	maxBcryptCost = 31
)

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// JWTSecret is the HMAC signing key for access and refresh tokens.
	// Required in production; a dev fallback is applied when DEV=true.
	JWTSecret string `env:"JWT_SECRET"`

	// Issuer is the "iss" claim stamped on issued tokens.
	Issuer string `env:"JWT_ISSUER" envDefault:"jobdeck"`

	// AccessTTL is the lifetime of access tokens.
	AccessTTL time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`

	// RefreshTTL is the lifetime of refresh tokens.
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`

	// BcryptCost is the bcrypt work factor for password hashing.
	// 0 means the library default.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"0"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.AccessTTL <= 0 {
		a.AccessTTL = defaultAccessTTL
	}
	if a.RefreshTTL <= 0 {
		a.RefreshTTL = defaultRefreshTTL
	}
	// Refresh tokens shorter than access tokens make refresh pointless.
	if a.RefreshTTL < a.AccessTTL {
		a.RefreshTTL = a.AccessTTL
	}
	if a.BcryptCost != 0 && (a.BcryptCost < minBcryptCost || a.BcryptCost > maxBcryptCost) {
		a.BcryptCost = 0
	}
}

// RefresherConfig controls the optional in-process status refresh runner.
// The sweep is also exposed at POST /jobs/update-status for external
// cron-style triggers; the runner is off unless an interval is set.
type RefresherConfig struct {
	// Interval between sweeps. 0 disables the in-process runner.
	Interval time.Duration `env:"STATUS_REFRESH_INTERVAL" envDefault:"0"`
}

// Sanitize applies guardrails to refresher configuration values.
func (r *RefresherConfig) Sanitize() {
	if r.Interval < 0 {
		r.Interval = 0
	}
}
