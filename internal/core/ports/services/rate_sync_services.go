package services

import "context"

// RateSyncSvcFacade reconciles upstream currency metadata and rates into
// local storage. Both operations are designed to run as periodic,
// single-instance batch jobs and are safe to re-run.
type RateSyncSvcFacade interface {
	// SyncCurrencies fetches the upstream currency list and creates or
	// updates every entry. Returns the number of entries processed.
	SyncCurrencies(ctx context.Context) (int, error)

	// UpdateRates fetches the latest anchor-based rates for the active
	// currencies and upserts one row per (anchor, target, today). Returns
	// the number of pairs written.
	UpdateRates(ctx context.Context) (int, error)
}
