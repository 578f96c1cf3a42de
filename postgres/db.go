package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xy-planning-network/accounts"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// safeGORMSession forces a clean *gorm.DB that still carries the current query's clauses.
var safeGORMSession = &gorm.Session{}

// errNilArg flags a nil query argument; callers ignore it where NULL is acceptable.
var errNilArg = errors.New("nil arg")

type DB struct {
	// *gorm.DB's methods are generally unsafe to use.
	// Some *gorm.DB methods are not thread-safe
	// and mutate the state of the *gorm.DB backing DB.
	//
	// If a *gorm.DB method calls *gorm.DB.getInstance,
	// it creates a new pointer and is safe.
	// If it does not, use *gorm.DB.Session to force a clean pointer.
	db *gorm.DB
}

// NewDB constructs a *DB from a *gorm.DB.
func NewDB(db *gorm.DB) *DB { return &DB{db: db} }

// DB exposes the underlying *gorm.DB backing DB.
//
// NB: use in exceptional circumstances only.
func (db *DB) DB() *gorm.DB { return db.db }

// WithContext binds ctx to the queries built from the returned *DB.
func (db *DB) WithContext(ctx context.Context) *DB { return &DB{db: db.db.WithContext(ctx)} }

// **************************************************************************
// FINISHER METHODS
//
// These methods close out a current query, executing it.
// All finisher methods are terminal and cannot be chained.
// They return any errors occurring within the query chain
// or when executing the query.
// **************************************************************************

// Create inserts value into the database, updating value with data yielded from the insertion,
// such as its primary key.
//
// Value must be a pointer, otherwise ErrUnaddressable returns.
// If value violates a unique constraint defined by the database, ErrExists returns.
// If value violates a NOT NULL or foreign key constraint, ErrNotValid returns.
// If value is not a database table, ErrMissingData returns.
func (db *DB) Create(value any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %T must be a non-nil pointer or slice", accounts.ErrUnaddressable, value)
		}
	}()

	if db.db.Error != nil {
		return db.db.Error
	}

	if v, ok := value.(Updates); ok {
		if err = v.valid(); err != nil {
			return err
		}

		value = map[string]any(v)
	}

	err = db.db.Session(&gorm.Session{FullSaveAssociations: false}).Create(value).Error
	switch {
	case err == nil:
		return nil

	case errors.Is(err, schema.ErrUnsupportedDataType), errors.Is(err, gorm.ErrInvalidData):
		return fmt.Errorf("%w: %T does not implement gorm.TableNamer", accounts.ErrMissingData, value)

	case strings.Contains(err.Error(), violatesFK), errConstraintViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", accounts.ErrNotValid, err)

	case errUniqViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", accounts.ErrExists, err)

	default:
		return fmt.Errorf("%w: failed creating %T: %s", accounts.ErrUnexpected, value, err)
	}
}

// Delete removes the database record for value.
// If no record matches, ErrNotFound returns.
func (db *DB) Delete(value any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	res := db.db.Delete(value)
	if errors.Is(res.Error, schema.ErrUnsupportedDataType) {
		return fmt.Errorf("%w: cannot parse table name from %T", accounts.ErrMissingData, value)
	}

	if res.Error != nil {
		return fmt.Errorf("%w: failed deleting %T: %s", accounts.ErrUnexpected, value, res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %T", accounts.ErrNotFound, value)
	}

	return nil
}

// Exists asserts whether any record matches the current query.
func (db *DB) Exists() (bool, error) {
	if db.db.Error != nil {
		return false, db.db.Error
	}

	var exists bool
	// NOTE: the outer statement must be fresh, otherwise GORM renders the sub-query
	// from the SQL the outer statement is in the middle of writing.
	outer := db.db.Session(&gorm.Session{NewDB: true})
	err := outer.Raw("SELECT EXISTS(?)", db.db.Session(safeGORMSession)).Scan(&exists).Error
	if err != nil {
		return false, fmt.Errorf("%w: %s", accounts.ErrUnexpected, err)
	}

	return exists, nil
}

// Find retrieves all records matching the current query
// and stores them in dest.
//
// If dest is not a valid type for the table queried,
// then ErrNotValid returns.
// If no matches are found, Find returns ErrNotFound.
func (db *DB) Find(dest any) (err error) {
	badDest := fmt.Errorf("%w: %T cannot be scanned into", accounts.ErrNotValid, dest)
	defer func() {
		if r := recover(); r != nil {
			err = badDest
		}
	}()

	if db.db.Error != nil {
		return db.db.Error
	}

	res := db.db.Find(dest)
	err = res.Error
	if err != nil && errSQLScan.MatchString(err.Error()) {
		return badDest
	}

	if err != nil && errSQLSyntax.MatchString(err.Error()) {
		return fmt.Errorf("%w: %s", accounts.ErrNotValid, err)
	}

	if err != nil {
		return fmt.Errorf("%w: %s", accounts.ErrUnexpected, err)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w", accounts.ErrNotFound)
	}

	return nil
}

// First retrieves a single record from the database matching the query
// and stores it in dest.
//
// If no matches are found, First returns ErrNotFound.
func (db *DB) First(dest any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	err := db.db.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %T", accounts.ErrNotFound, dest)
	}

	if err != nil && errSQLSyntax.MatchString(err.Error()) {
		return fmt.Errorf("%w: %s", accounts.ErrNotValid, err)
	}

	if err != nil {
		return fmt.Errorf("%w: %s", accounts.ErrUnexpected, err)
	}

	return nil
}

// Update replaces existing data on all records matching the query with values.
//
// If no records are updated, ErrNotFound returns.
// If values violate a unique constraint, ErrExists returns.
func (db *DB) Update(values Updates) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	if err := values.valid(); err != nil {
		return err
	}

	res := db.db.Updates(map[string]any(values))
	switch {
	case res.RowsAffected == 0 && res.Error == nil:
		return fmt.Errorf("%w", accounts.ErrNotFound)

	case res.Error == nil:
		return nil

	case errUniqViolation.MatchString(res.Error.Error()):
		return fmt.Errorf("%w: %s", accounts.ErrExists, res.Error)

	default:
		return fmt.Errorf("%w: %s", accounts.ErrUnexpected, res.Error)
	}
}

// **************************************************************************
// QUERY BUILDING METHODS
//
// Query building methods initiate a query and then add clauses to it
// until a finisher method is called.
// **************************************************************************

// Model declares the table used for the query.
//
// Model computes the name for the database table from the type of model,
// unless model implements: func TableName() string
func (db *DB) Model(model any) *DB { return &DB{db: db.db.Model(model)} }

// Order applies an ORDER BY clause to the current query.
func (db *DB) Order(order string) *DB { return &DB{db: db.db.Order(order)} }

// Select applies a SELECT statement to the current query.
func (db *DB) Select(columns ...string) *DB { return &DB{db: db.db.Select(columns)} }

// Where applies the query fragment or subquery to the current query
// as a WHERE or AND clause.
//
// Where supports one or none args.
// If more than one arg is passed, finisher methods return ErrNotValid.
func (db *DB) Where(query any, args ...any) *DB {
	if len(args) > 1 {
		gdb := db.DB().Session(safeGORMSession)
		_ = gdb.AddError(fmt.Errorf("%w: Where supports one or none args", accounts.ErrNotValid))
		return &DB{db: gdb}
	}

	var err error
	args, err = unwrap(args...)
	if err != nil && !errors.Is(err, errNilArg) {
		gdb := db.DB().Session(safeGORMSession)
		_ = gdb.AddError(err)
		return &DB{db: gdb}
	}

	q, err := unwrap(query)
	if err != nil {
		gdb := db.DB().Session(safeGORMSession)
		_ = gdb.AddError(err)
		return &DB{db: gdb}
	}

	return &DB{db.db.Where(q[0], args...)}
}

// **************************************************************************
// HELPERS
// **************************************************************************

// An Updates is a map of key-value pairs where key is the database column and the value is the data.
type Updates map[string]any

func (u Updates) valid() error {
	if len(u) == 0 {
		return fmt.Errorf("%w: no columns set", accounts.ErrMissingData)
	}

	return nil
}

// unwrap converts custom postgres types that are troublesome for GORM into types it can handle.
//
// If a *DB is passed as a parameter and that *DB is in an error state, unwrap surfaces the error.
// This enables a *DB method to return early and prevent partial queries from running.
func unwrap(args ...any) ([]any, error) {
	var err error
	res := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case *DB:
			gdb := v.DB()
			if gdb.Error != nil {
				err = errors.Join(err, gdb.Error)
			}
			res[i] = gdb

		case nil:
			res[i] = arg
			err = errors.Join(err, accounts.ErrNotValid, errNilArg)

		default:
			res[i] = arg
		}
	}

	return res, err
}
