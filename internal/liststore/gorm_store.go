package liststore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Column describes one list field for EnsureList.
type Column struct {
	Name string
	Type string // text | date | timestamptz
}

var columnTypes = map[string]string{
	"text":        "TEXT NOT NULL DEFAULT ''",
	"date":        "DATE",
	"timestamptz": "TIMESTAMPTZ",
}

// GormStore keeps each list in its own postgres table with a serial id.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) WithTx(tx *sql.Tx) Store {
	if tx == nil {
		return s
	}
	scoped := s.db.Session(&gorm.Session{NewDB: true})
	scoped.Statement.ConnPool = tx
	return &GormStore{db: scoped}
}

// EnsureList creates the list table when missing and adds any column a later
// schema revision introduced. Existing columns are left untouched.
func (s *GormStore) EnsureList(ctx context.Context, list string, columns []Column) error {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	if err := validateNames(list, names...); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	create := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s SERIAL PRIMARY KEY)`, quote(list), quote(IDField))
	if err := db.Exec(create).Error; err != nil {
		return mapStoreError(err)
	}

	for _, c := range columns {
		ddl, ok := columnTypes[c.Type]
		if !ok {
			return fmt.Errorf("unsupported column type %q for %s", c.Type, c.Name)
		}
		alter := fmt.Sprintf(`ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s`, quote(list), quote(c.Name), ddl)
		if err := db.Exec(alter).Error; err != nil {
			return mapStoreError(err)
		}
	}
	return nil
}

func (s *GormStore) Select(ctx context.Context, list string, fields ...string) ([]Item, error) {
	if err := validateNames(list, fields...); err != nil {
		return nil, err
	}

	cols := []string{quote(IDField)}
	for _, f := range fields {
		if f == IDField {
			continue
		}
		cols = append(cols, quote(f))
	}
	if len(fields) == 0 {
		cols = []string{"*"}
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`, strings.Join(cols, ", "), quote(list), quote(IDField))

	var rows []map[string]any
	if err := s.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, mapStoreError(err)
	}

	items := make([]Item, len(rows))
	for i, r := range rows {
		items[i] = Item(r)
	}
	return items, nil
}

func (s *GormStore) Add(ctx context.Context, list string, values Item) (int, error) {
	fields := keys(values)
	if err := validateNames(list, fields...); err != nil {
		return 0, err
	}

	cols := make([]string, 0, len(fields))
	marks := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		if f == IDField {
			continue
		}
		cols = append(cols, quote(f))
		marks = append(marks, "?")
		args = append(args, values[f])
	}

	var query string
	if len(cols) == 0 {
		query = fmt.Sprintf(`INSERT INTO %s DEFAULT VALUES RETURNING %s`, quote(list), quote(IDField))
	} else {
		query = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
			quote(list), strings.Join(cols, ","), strings.Join(marks, ","), quote(IDField))
	}

	var id int64
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&id).Error; err != nil {
		return 0, mapStoreError(err)
	}
	return int(id), nil
}

func (s *GormStore) Update(ctx context.Context, list string, id int, values Item) error {
	fields := keys(values)
	if err := validateNames(list, fields...); err != nil {
		return err
	}

	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for _, f := range fields {
		if f == IDField {
			continue
		}
		sets = append(sets, quote(f)+" = ?")
		args = append(args, values[f])
	}
	if len(sets) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidName)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = ?`, quote(list), strings.Join(sets, ", "), quote(IDField))
	res := s.db.WithContext(ctx).Exec(query, args...)
	if res.Error != nil {
		return mapStoreError(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s/%d", ErrItemNotFound, list, id)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, list string, id int) error {
	if err := validateNames(list); err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, quote(list), quote(IDField))
	res := s.db.WithContext(ctx).Exec(query, id)
	if res.Error != nil {
		return mapStoreError(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s/%d", ErrItemNotFound, list, id)
	}
	return nil
}

func quote(name string) string {
	return `"` + name + `"`
}

func mapStoreError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01": // undefined_table
			return fmt.Errorf("%w: %s", ErrListNotFound, pgErr.Message)
		case "42703": // undefined_column
			return fmt.Errorf("%w: %s", ErrInvalidName, pgErr.Message)
		}
	}
	return err
}
