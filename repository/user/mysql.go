package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/xam1dullo/identity-api/model"
)

// SQL stores user records in MySQL. The email PRIMARY KEY makes
// Create an atomic create-if-absent: a racing duplicate insert fails
// with error 1062 instead of writing a second record.
type SQL struct {
	conn *sqlx.DB
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	mysqlErrDuplicateEntry = 1062

	insertUserQuery = `INSERT INTO users (email, first_name, last_name, phone, address, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	existsUserQuery = `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`
	getUserQuery    = `SELECT email, first_name, last_name, phone, address, password_hash, created_at, updated_at
		FROM users WHERE email = ?`
	getUserForUpdateQuery = getUserQuery + ` FOR UPDATE`
	updateUserQuery       = `UPDATE users SET first_name = ?, last_name = ?, phone = ?, address = ?, password_hash = ?, updated_at = ?
		WHERE email = ?`
	deleteUserQuery = `DELETE FROM users WHERE email = ?`
	listUsersQuery  = `SELECT email, first_name, last_name, phone, address, password_hash, created_at, updated_at
		FROM users ORDER BY email`
)

func (s *SQL) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := s.conn.QueryRowxContext(ctx, existsUserQuery, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *SQL) Create(ctx context.Context, entity *model.UserEntity) error {
	entity.CreatedAt = time.Now().UTC()
	_, err := s.conn.ExecContext(ctx, insertUserQuery,
		entity.Email, entity.FirstName, entity.LastName, entity.Phone, entity.Address,
		entity.PasswordHash, entity.CreatedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (s *SQL) Get(ctx context.Context, email string) (*model.UserEntity, error) {
	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, getUserQuery, email).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// Update runs the read-modify-write inside a transaction with a row
// lock, so two concurrent updates to the same email serialize instead
// of overwriting each other's fields.
func (s *SQL) Update(ctx context.Context, email string, patch *model.UserPatch) (*model.UserEntity, error) {
	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var entity model.UserEntity
	if err := tx.QueryRowxContext(ctx, getUserForUpdateQuery, email).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	entity.ApplyPatch(patch)
	now := time.Now().UTC()
	entity.UpdatedAt = &now

	if _, err := tx.ExecContext(ctx, updateUserQuery,
		entity.FirstName, entity.LastName, entity.Phone, entity.Address,
		entity.PasswordHash, entity.UpdatedAt, email); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) Delete(ctx context.Context, email string) error {
	result, err := s.conn.ExecContext(ctx, deleteUserQuery, email)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQL) List(ctx context.Context) ([]*model.UserEntity, error) {
	entities := make([]*model.UserEntity, 0)
	if err := s.conn.SelectContext(ctx, &entities, listUsersQuery); err != nil {
		return nil, err
	}
	return entities, nil
}
