package nakama

import (
	"context"
	"fmt"

	"thegame/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// AccountAdapter writes profile changes through the Nakama account API.
type AccountAdapter struct {
	nk runtime.NakamaModule
}

func NewAccountAdapter(nk runtime.NakamaModule) *AccountAdapter {
	return &AccountAdapter{nk: nk}
}

// SetDisplayName leaves every other field unchanged; Nakama ignores empty
// strings and a nil metadata map.
func (a *AccountAdapter) SetDisplayName(ctx context.Context, userID, displayName string) error {
	if err := a.nk.AccountUpdateId(ctx, userID, "", nil, displayName, "", "", "", ""); err != nil {
		return fmt.Errorf("account update %s: %w", userID, err)
	}
	return nil
}

var _ ports.AccountPort = (*AccountAdapter)(nil)
