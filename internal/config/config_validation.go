package config

import "time"

// Defaults applied when neither environment, flags, nor the JSON file supply
// a value. The token and lockout defaults follow the deployment guide for
// the portal; the menu depth counts root as 0.
const (
	defaultAlgorithm        = "HS256"
	defaultTokenIssuer      = "core-admin"
	defaultAccessTTLMinutes = 30
	defaultRefreshTTLDays   = 7
	defaultMaxLoginFails    = 5
	defaultMenuMaxDepth     = 3
	defaultRequestTimeout   = 5 * time.Second
)

// applyDefaults fills zero-valued fields with their documented defaults.
// Called by the builder after all sources are merged and before validation.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Auth.Algorithm == "" {
		cfg.Auth.Algorithm = defaultAlgorithm
	}
	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = defaultTokenIssuer
	}
	if cfg.Auth.AccessTokenExpireMinutes == 0 {
		cfg.Auth.AccessTokenExpireMinutes = defaultAccessTTLMinutes
	}
	if cfg.Auth.RefreshTokenExpireDays == 0 {
		cfg.Auth.RefreshTokenExpireDays = defaultRefreshTTLDays
	}
	if cfg.Auth.MaxLoginFails == 0 {
		cfg.Auth.MaxLoginFails = defaultMaxLoginFails
	}
	if cfg.Menu.MaxDepth == 0 {
		cfg.Menu.MaxDepth = defaultMenuMaxDepth
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.SecretKey == "" {
		return ErrMissingSecretKey
	}

	if cfg.Auth.Algorithm != "HS256" && cfg.Auth.Algorithm != "HS384" && cfg.Auth.Algorithm != "HS512" {
		return ErrUnsupportedAlgorithm
	}

	if cfg.Auth.MaxLoginFails < 1 {
		return ErrInvalidAuthConfigs
	}

	if cfg.Menu.MaxDepth < 0 {
		return ErrInvalidMenuConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
