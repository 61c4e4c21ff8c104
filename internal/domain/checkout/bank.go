package checkout

import "context"

// Bank is one entry from the bank directory. Upstream carries many more
// fields; only the ones the linking flow needs are kept.
type Bank struct {
	ID        string
	ShortName string
}

// BankDirectory lists the banks available for account linking
type BankDirectory interface {
	ListBanks(ctx context.Context) ([]Bank, error)
}
