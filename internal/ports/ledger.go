package ports

import (
	"rhcos-prune/internal/types"
)

// LedgerStorePort persists the deletion ledger. Load returns an empty
// ledger when no file exists yet; Save must never leave the store
// observable in a half-written state.
type LedgerStorePort interface {
	Load() (types.Ledger, error)
	Save(ledger types.Ledger) error
}
