package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/currency_converter_app/internal/apperrors"
	"github.com/SscSPs/currency_converter_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_converter_app/internal/core/ports/repositories"
	"github.com/SscSPs/currency_converter_app/internal/models"
	"github.com/SscSPs/currency_converter_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository implements the exchange rate repository ports using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryWithTx {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExchangeRateRepositoryWithTx = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `
	exchange_rate_id, base_currency_code, target_currency_code, rate, rate_date,
	created_at, last_updated_at`

// FindRateOnOrBefore retrieves the most recent rate for the pair whose rate
// date is on or before asOf. At most one row exists per day, so ordering by
// rate date alone is unambiguous.
func (r *PgxExchangeRateRepository) FindRateOnOrBefore(ctx context.Context, baseCode, targetCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE base_currency_code = $1 AND target_currency_code = $2 AND rate_date <= $3
		ORDER BY rate_date DESC
		LIMIT 1;
	`
	return r.queryOne(ctx, query, strings.ToUpper(baseCode), strings.ToUpper(targetCode), asOf)
}

// FindRateForDate retrieves the rate stored for exactly the given date.
func (r *PgxExchangeRateRepository) FindRateForDate(ctx context.Context, baseCode, targetCode string, date time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE base_currency_code = $1 AND target_currency_code = $2 AND rate_date = $3;
	`
	return r.queryOne(ctx, query, strings.ToUpper(baseCode), strings.ToUpper(targetCode), date)
}

func (r *PgxExchangeRateRepository) queryOne(ctx context.Context, query string, args ...any) (*domain.ExchangeRate, error) {
	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&modelRate.ExchangeRateID, &modelRate.BaseCurrencyCode, &modelRate.TargetCurrencyCode,
		&modelRate.Rate, &modelRate.RateDate, &modelRate.CreatedAt, &modelRate.LastUpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// ListRatesForDate retrieves every rate stored for the given date, ordered
// by base then target code.
func (r *PgxExchangeRateRepository) ListRatesForDate(ctx context.Context, date time.Time) ([]domain.ExchangeRate, error) {
	query := `
		SELECT` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE rate_date = $1
		ORDER BY base_currency_code, target_currency_code;
	`
	rows, err := r.Pool.Query(ctx, query, date)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list exchange rates", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		var modelRate models.ExchangeRate
		err := row.Scan(
			&modelRate.ExchangeRateID, &modelRate.BaseCurrencyCode, &modelRate.TargetCurrencyCode,
			&modelRate.Rate, &modelRate.RateDate, &modelRate.CreatedAt, &modelRate.LastUpdatedAt,
		)
		return modelRate, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan exchange rates", err)
	}

	return mapping.ToDomainExchangeRateSlice(modelRates), nil
}

// SaveExchangeRates upserts the given rates in a single transaction. Rows
// are keyed by (base, target, rate_date); the unique constraint on that
// triple is what makes two overlapping sync runs safe, so the insert always
// goes through ON CONFLICT rather than a separate existence check.
func (r *PgxExchangeRateRepository) SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error {
	if len(rates) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO exchange_rates (
			exchange_rate_id, base_currency_code, target_currency_code, rate, rate_date,
			created_at, last_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (base_currency_code, target_currency_code, rate_date) DO UPDATE SET
			rate = EXCLUDED.rate,
			last_updated_at = EXCLUDED.last_updated_at;
	`

	for _, rate := range rates {
		modelRate := mapping.ToModelExchangeRate(rate)
		modelRate.BaseCurrencyCode = strings.ToUpper(modelRate.BaseCurrencyCode)
		modelRate.TargetCurrencyCode = strings.ToUpper(modelRate.TargetCurrencyCode)

		if modelRate.BaseCurrencyCode == modelRate.TargetCurrencyCode {
			_ = r.Rollback(ctx, tx)
			return apperrors.NewValidationError(fmt.Sprintf("base and target currencies cannot both be %s", modelRate.BaseCurrencyCode))
		}

		_, err := tx.Exec(ctx, query,
			modelRate.ExchangeRateID, modelRate.BaseCurrencyCode, modelRate.TargetCurrencyCode,
			modelRate.Rate, modelRate.RateDate, modelRate.CreatedAt, modelRate.LastUpdatedAt,
		)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			return apperrors.NewAppError(500, "failed to save exchange rate", err)
		}
	}

	return r.Commit(ctx, tx)
}
