package nakama

import (
	"context"
	"errors"

	"cribbage/internal/app"
	"cribbage/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

var errUnauthenticated = errors.New("no player session or token")

// IdentitySource resolves the calling player. Session calls carry the user in
// the runtime context; calls made with the server http key carry a player token.
type IdentitySource struct {
	accounts ports.AccountPort
	tokens   *app.PlayerTokens
}

// NewIdentitySource creates an identity source. tokens may be nil to accept
// session calls only.
func NewIdentitySource(accounts ports.AccountPort, tokens *app.PlayerTokens) *IdentitySource {
	return &IdentitySource{accounts: accounts, tokens: tokens}
}

// Resolve returns the verified caller.
func (s *IdentitySource) Resolve(ctx context.Context, logger runtime.Logger, token string) (ports.Identity, error) {
	if userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string); userID != "" {
		identity := ports.Identity{PlayerID: userID}
		identity.Display, _ = ctx.Value(runtime.RUNTIME_CTX_USERNAME).(string)
		if s.accounts != nil {
			name, err := s.accounts.DisplayName(ctx, userID)
			if err != nil {
				logger.Warn("Resolve [User:%s]: Failed to load display name: %v", userID, err)
			} else if name != "" {
				identity.Display = name
			}
		}
		return identity, nil
	}
	if token != "" && s.tokens != nil {
		identity, err := s.tokens.Verify(token)
		if err != nil {
			logger.Warn("Resolve: Rejected player token: %v", err)
			return ports.Identity{}, errUnauthenticated
		}
		return identity, nil
	}
	return ports.Identity{}, errUnauthenticated
}
