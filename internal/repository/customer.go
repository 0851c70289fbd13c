package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/database"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/model"
)

// selectColumns aliases every column: SQLite reports a bare column by its declared name, which
// is upper case, and sqlx maps by exact name.
const selectColumns = `
	SELECT id AS id, first_name AS first_name, middle_name AS middle_name, last_name AS last_name,
		created_datetime AS created_datetime, created_by AS created_by,
		modified_datetime AS modified_datetime, modified_by AS modified_by
	FROM CUSTOMER`

const findAllSQL = selectColumns + `
	ORDER BY id`

const findByIDSQL = selectColumns + `
	WHERE id = ?`

const countWithIDSQL = `
	SELECT COUNT(1) FROM CUSTOMER WHERE id = ?`

const insertSQL = `
	INSERT INTO CUSTOMER (first_name, middle_name, last_name,
		created_datetime, created_by, modified_datetime, modified_by)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

const updateSQL = `
	UPDATE CUSTOMER
	SET first_name = ?, middle_name = ?, last_name = ?, modified_datetime = ?, modified_by = ?
	WHERE id = ?`

// CustomerRepository is the store of customer records.
type CustomerRepository interface {
	FindAll(ctx context.Context) ([]model.Customer, error)
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
	CountWithID(ctx context.Context, id int64) (int, error)
	Save(ctx context.Context, customer *model.Customer) (*model.Customer, error)
}

type customerRepository struct {
	db      *sqlx.DB
	auditor string
	clock   func() time.Time
}

// Option customizes a repository.
type Option func(*customerRepository)

// WithClock replaces the source of the audit timestamps.
func WithClock(clock func() time.Time) Option {
	return func(r *customerRepository) {
		r.clock = clock
	}
}

// NewCustomerRepository returns a repository on db that stamps every write with auditor.
func NewCustomerRepository(db *sqlx.DB, auditor string, opts ...Option) CustomerRepository {
	r := &customerRepository{
		db:      db,
		auditor: auditor,
		clock:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *customerRepository) FindAll(ctx context.Context) ([]model.Customer, error) {
	customers := []model.Customer{}
	err := database.WithTx(ctx, r.db, database.ReadOnly, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &customers, tx.Rebind(findAllSQL))
	})
	if err != nil {
		return nil, fmt.Errorf("find all customers: %w", err)
	}
	return customers, nil
}

func (r *customerRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	var customer *model.Customer
	err := database.WithTx(ctx, r.db, database.ReadOnly, func(tx *sqlx.Tx) error {
		var err error
		customer, err = findByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find customer %d: %w", id, err)
	}
	return customer, nil
}

func (r *customerRepository) CountWithID(ctx context.Context, id int64) (int, error) {
	var count int
	err := database.WithTx(ctx, r.db, database.ReadOnly, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &count, tx.Rebind(countWithIDSQL), id)
	})
	if err != nil {
		return 0, fmt.Errorf("count customer %d: %w", id, err)
	}
	return count, nil
}

// Save inserts the customer when it has no id yet and replaces all name fields of the stored
// customer otherwise. The creation audit fields are written once, the modification audit fields
// on every call. The stored state is read back and returned.
func (r *customerRepository) Save(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	now := r.clock()
	var saved *model.Customer
	err := database.WithTx(ctx, r.db, nil, func(tx *sqlx.Tx) error {
		id := customer.ID
		if id == 0 {
			var err error
			id, err = r.insert(ctx, tx, customer, now)
			if err != nil {
				return err
			}
		} else {
			_, err := tx.ExecContext(ctx, tx.Rebind(updateSQL),
				customer.FirstName,
				customer.MiddleName,
				customer.LastName,
				now,
				r.auditor,
				id,
			)
			if err != nil {
				return fmt.Errorf("update: %w", err)
			}
		}
		var err error
		saved, err = findByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if saved == nil {
			return fmt.Errorf("customer %d vanished during save", id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}
	return saved, nil
}

// insert adds a new row and returns its generated id. MySQL reports the id through the result,
// the other databases return it from the statement.
func (r *customerRepository) insert(ctx context.Context, tx *sqlx.Tx, customer *model.Customer, now time.Time) (int64, error) {
	args := []interface{}{
		customer.FirstName,
		customer.MiddleName,
		customer.LastName,
		now,
		r.auditor,
		now,
		r.auditor,
	}
	if tx.DriverName() == "mysql" {
		result, err := tx.ExecContext(ctx, insertSQL, args...)
		if err != nil {
			return 0, fmt.Errorf("insert: %w", err)
		}
		return result.LastInsertId()
	}
	var id int64
	if err := tx.GetContext(ctx, &id, tx.Rebind(insertSQL+" RETURNING id"), args...); err != nil {
		return 0, fmt.Errorf("insert: %w", err)
	}
	return id, nil
}

func findByID(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Customer, error) {
	var customer model.Customer
	err := tx.GetContext(ctx, &customer, tx.Rebind(findByIDSQL), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
