package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be between 4 and 31 (got %d)", c.Auth.BcryptCost)
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}

	if err := c.Farm.validate(); err != nil {
		return fmt.Errorf("farm: %w", err)
	}

	return nil
}

func (f *FarmConfig) validate() error {
	if f.MinPasswordLength < 8 {
		return fmt.Errorf("min_password_length must be >= 8 (got %d)", f.MinPasswordLength)
	}
	if f.ListDefaultLimit <= 0 {
		return fmt.Errorf("list_default_limit must be > 0 (got %d)", f.ListDefaultLimit)
	}
	if f.ListMaxLimit < f.ListDefaultLimit {
		return fmt.Errorf("list_max_limit must be >= list_default_limit (got %d < %d)", f.ListMaxLimit, f.ListDefaultLimit)
	}
	if f.AuditHistoryLimit <= 0 {
		return fmt.Errorf("audit_history_limit must be > 0 (got %d)", f.AuditHistoryLimit)
	}
	return nil
}
