package ledger

import "errors"

var (
	// ErrAccountInUse blocks deleting an account that other records depend on.
	ErrAccountInUse = errors.New("account is used by transactions, investments or assets")
	// ErrPlatformInUse blocks deleting a platform that investments reference.
	ErrPlatformInUse = errors.New("platform is used by investments")
	// ErrReceivablePaid blocks paying a receivable twice.
	ErrReceivablePaid = errors.New("receivable is already paid")
)
