package repository

import (
	"context"
	"database/sql"
	"errors"

	relaydomain "trisa-demo/relay/internal/relay/domain"
	"trisa-demo/relay/internal/vasp/domain"
)

const vaspColumns = `vasp_id, display_name, description, trisa_ds_id, trisa_ds_name,
	trisa_protocol_host, private_key, public_key, rvasp_address, created_at`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a directory repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVASP(row scanner) (*domain.VASP, error) {
	v := &domain.VASP{}
	err := row.Scan(&v.ID, &v.DisplayName, &v.Description, &v.TrisaDsID, &v.TrisaDsName,
		&v.TrisaProtocolHost, &v.PrivateKey, &v.PublicKey, &v.RVASPAddress, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetVASP returns the VASP for id.
func (r *PostgresRepository) GetVASP(ctx context.Context, id string) (*domain.VASP, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+vaspColumns+` FROM vasps WHERE vasp_id = $1`, id)
	v, err := scanVASP(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &relaydomain.LookupError{ID: id, Err: relaydomain.ErrVASPNotFound}
		}
		return nil, err
	}
	return v, nil
}

// ListVASPs returns every VASP ordered by display name.
func (r *PostgresRepository) ListVASPs(ctx context.Context) ([]*domain.VASP, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+vaspColumns+` FROM vasps ORDER BY display_name, vasp_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.VASP
	for rows.Next() {
		v, err := scanVASP(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListWallets returns the wallets held at vaspID.
func (r *PostgresRepository) ListWallets(ctx context.Context, vaspID string) ([]*domain.Wallet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT wallet_id, vasp_id, wallet_address, name, email, balance
		 FROM wallets WHERE vasp_id = $1 ORDER BY wallet_id`, vaspID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Wallet
	for rows.Next() {
		w := &domain.Wallet{}
		if err := rows.Scan(&w.ID, &w.VaspID, &w.Address, &w.Name, &w.Email, &w.Balance); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// UpsertVASP inserts v or updates the existing row with the same id.
func (r *PostgresRepository) UpsertVASP(ctx context.Context, v *domain.VASP) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vasps (vasp_id, display_name, description, trisa_ds_id, trisa_ds_name,
			trisa_protocol_host, private_key, public_key, rvasp_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (vasp_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			description = EXCLUDED.description,
			trisa_ds_id = EXCLUDED.trisa_ds_id,
			trisa_ds_name = EXCLUDED.trisa_ds_name,
			trisa_protocol_host = EXCLUDED.trisa_protocol_host,
			private_key = EXCLUDED.private_key,
			public_key = EXCLUDED.public_key,
			rvasp_address = EXCLUDED.rvasp_address`,
		v.ID, v.DisplayName, v.Description, v.TrisaDsID, v.TrisaDsName,
		v.TrisaProtocolHost, v.PrivateKey, v.PublicKey, v.RVASPAddress)
	return err
}

// UpsertWallet inserts w or updates the existing row with the same id.
func (r *PostgresRepository) UpsertWallet(ctx context.Context, w *domain.Wallet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wallets (wallet_id, vasp_id, wallet_address, name, email, balance)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (wallet_id) DO UPDATE SET
			vasp_id = EXCLUDED.vasp_id,
			wallet_address = EXCLUDED.wallet_address,
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			balance = EXCLUDED.balance`,
		w.ID, w.VaspID, w.Address, w.Name, w.Email, w.Balance)
	return err
}
