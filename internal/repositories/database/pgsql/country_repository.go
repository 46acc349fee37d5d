package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/testbanken/backoffice/internal/apperrors"
	"github.com/testbanken/backoffice/internal/core/domain"
	portsrepo "github.com/testbanken/backoffice/internal/core/ports/repositories"
	"github.com/testbanken/backoffice/internal/models"
	"github.com/testbanken/backoffice/internal/utils/mapping"
)

type PgxCountryRepository struct {
	BaseRepository
}

func newPgxCountryRepository(pool *pgxpool.Pool) portsrepo.CountryRepositoryFacade {
	return &PgxCountryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CountryRepositoryFacade = (*PgxCountryRepository)(nil)

// FindAllCountries returns all countries ordered by name.
func (r *PgxCountryRepository) FindAllCountries(ctx context.Context) ([]domain.Country, error) {
	rows, err := r.Pool.Query(ctx, `SELECT country_code, name, telephone_country_code FROM countries ORDER BY name;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query countries", err)
	}
	defer rows.Close()

	var countries []domain.Country
	for rows.Next() {
		var m models.Country
		if err := rows.Scan(&m.CountryCode, &m.Name, &m.TelephoneCountryCode); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan country row", err)
		}
		countries = append(countries, mapping.ToDomainCountry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading country rows", err)
	}
	return countries, nil
}

// FindCountryByCode returns the country or apperrors.ErrNotFound.
func (r *PgxCountryRepository) FindCountryByCode(ctx context.Context, countryCode string) (*domain.Country, error) {
	var m models.Country
	err := r.Pool.QueryRow(ctx, `SELECT country_code, name, telephone_country_code FROM countries WHERE country_code = $1;`, countryCode).
		Scan(&m.CountryCode, &m.Name, &m.TelephoneCountryCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query country", err)
	}

	country := mapping.ToDomainCountry(m)
	return &country, nil
}
