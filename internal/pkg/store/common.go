package store

import (
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ougirez/billing-tracker/internal/pkg/constants"
)

const (
	tableStatusGroups     = "status_groups"
	tableBillingStatuses  = "billing_statuses"
	tableFacilityGroups   = "facility_groups"
	tableFacilities       = "facilities"
	tableBillingRecords   = "billing_records"
	tableCustomDates      = "custom_dates"
	tableSettings         = "settings"
	tableSchemaMigrations = "schema_migrations"
)

// Postgres SQLSTATE codes the store translates.
const (
	pgUniqueViolation        = "23505"
	pgForeignKeyViolation    = "23503"
	pgNotNullViolation       = "23502"
	pgCheckViolation         = "23514"
	pgStringDataTruncation   = "22001"
	pgInvalidTextRepr        = "22P02"
	pgNumericValueOutOfRange = "22003"
)

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if pgxscan.NotFound(err) {
		return fmt.Errorf("%w: %s", constants.ErrDBNotFound, err.Error())
	}
	for k, v := range mapping {
		if errors.Is(err, k) {
			return fmt.Errorf("%w: %s", v, err.Error())
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", constants.ErrConstraint, pgErr.Message)
		case pgNotNullViolation, pgCheckViolation, pgStringDataTruncation, pgInvalidTextRepr, pgNumericValueOutOfRange:
			return fmt.Errorf("%w: %s", constants.ErrValidation, pgErr.Message)
		}
	}
	return err
}

// mustAffect turns a zero rows-affected result into a not-found error.
func mustAffect(tag pgconn.CommandTag, entity string, id int64) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %d", constants.ErrDBNotFound, entity, id)
	}
	return nil
}

// builder возвращает squirrel SQL Builder обьект.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
