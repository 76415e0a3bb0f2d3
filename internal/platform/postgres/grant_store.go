package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/screenomics/locationworker/internal/permission"
	"github.com/screenomics/locationworker/internal/store"
)

// PostgresGrantStore implements store.GrantStore using the
// capability_grants table.
type PostgresGrantStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var (
	_ store.GrantStore      = (*PostgresGrantStore)(nil)
	_ permission.GrantStore = (*PostgresGrantStore)(nil)
)

// NewPostgresGrantStore creates a grant store over db.
func NewPostgresGrantStore(db store.DBTX, logger *slog.Logger) *PostgresGrantStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresGrantStore{
		db:     db,
		logger: logger.With("component", "grant_store"),
	}
}

// WithTx returns a store that runs its queries inside tx.
func (s *PostgresGrantStore) WithTx(tx *sql.Tx) *PostgresGrantStore {
	return &PostgresGrantStore{
		db:     tx,
		logger: s.logger,
	}
}

// IsGranted implements store.GrantStore.
func (s *PostgresGrantStore) IsGranted(ctx context.Context, capability string) (bool, error) {
	grant, err := s.Get(ctx, capability)
	if err != nil {
		if errors.Is(err, store.ErrGrantNotFound) {
			return false, nil
		}
		return false, err
	}
	return grant.Granted, nil
}

// Get implements store.GrantStore.
func (s *PostgresGrantStore) Get(ctx context.Context, capability string) (*store.Grant, error) {
	if strings.TrimSpace(capability) == "" {
		return nil, store.NewStoreError("capability_grant", "get", "capability is required", store.ErrInvalidEntity)
	}

	var grant store.Grant
	err := s.db.QueryRowContext(ctx,
		`SELECT capability, granted, updated_at FROM capability_grants WHERE capability = $1`,
		capability,
	).Scan(&grant.Capability, &grant.Granted, &grant.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrGrantNotFound
		}
		s.logger.Debug("grant query failed", "capability", capability, "error", err)
		return nil, store.NewStoreError("capability_grant", "get", "query failed", MapError(err))
	}

	return &grant, nil
}

// Set implements store.GrantStore. The read of the previous state and the
// upsert run in one transaction; a store created by WithTx uses the caller's.
func (s *PostgresGrantStore) Set(ctx context.Context, capability string, granted bool) (bool, error) {
	if strings.TrimSpace(capability) == "" {
		return false, store.NewStoreError("capability_grant", "set", "capability is required", store.ErrInvalidEntity)
	}

	var previous bool
	var err error
	if db, ok := s.db.(*sql.DB); ok {
		err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			var txErr error
			previous, txErr = s.WithTx(tx).upsert(ctx, capability, granted)
			return txErr
		})
	} else {
		previous, err = s.upsert(ctx, capability, granted)
	}
	if err != nil {
		return false, store.NewStoreError("capability_grant", "set", "upsert failed", err)
	}

	s.logger.Info("capability grant recorded",
		"capability", capability,
		"granted", granted,
		"previous", previous)

	return previous, nil
}

func (s *PostgresGrantStore) upsert(ctx context.Context, capability string, granted bool) (bool, error) {
	var previous bool
	err := s.db.QueryRowContext(ctx,
		`SELECT granted FROM capability_grants WHERE capability = $1 FOR UPDATE`,
		capability,
	).Scan(&previous)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, MapError(err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO capability_grants (capability, granted, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (capability) DO UPDATE
		 SET granted = EXCLUDED.granted, updated_at = EXCLUDED.updated_at`,
		capability, granted,
	)
	if err != nil {
		return false, MapError(err)
	}
	return previous, nil
}
