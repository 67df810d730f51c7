// Package identity builds the configured identity provider. The
// provider owns credential checking; session tokens are minted
// separately once it accepts a signin.
package identity

import (
	"fmt"

	"github.com/Brianali-codes/Remaya-full/internal/config"
	"github.com/Brianali-codes/Remaya-full/internal/core"
	"github.com/Brianali-codes/Remaya-full/internal/identity/local"
	"github.com/Brianali-codes/Remaya-full/internal/identity/supabase"
)

// Build constructs the identity provider named in the config. The
// user store is only consulted by the "local" type; the hosted
// provider keeps its own user table.
func Build(cfg config.IdentityConfig, users core.UserStore) (core.IdentityProvider, error) {
	switch cfg.Type {
	case "supabase":
		p, err := supabase.NewFromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("building supabase identity provider: %w", err)
		}
		return p, nil
	case "local":
		if users == nil {
			return nil, fmt.Errorf("local identity provider requires a user store")
		}
		return local.New(users), nil
	default:
		return nil, fmt.Errorf("unknown identity provider type %q", cfg.Type)
	}
}
