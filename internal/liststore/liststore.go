// Package liststore is the client for the hosted list store: named
// collections of flat records addressed by an integer id that the store
// assigns. Values come back raw; typing them is the caller's job.
package liststore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
)

// IDField is the store-assigned key present in every selected item.
const IDField = "id"

var (
	ErrItemNotFound = errors.New("list item not found")
	ErrListNotFound = errors.New("list not found")
	ErrInvalidName  = errors.New("invalid list or field name")
)

// Item is one raw record keyed by field name.
type Item map[string]any

//go:generate mockgen -source=liststore.go -destination=mock/liststore_mock.go -package=mock
type Store interface {
	WithTx(tx *sql.Tx) Store
	// Select returns every item of list in store order; IDField is always included.
	Select(ctx context.Context, list string, fields ...string) ([]Item, error)
	Add(ctx context.Context, list string, values Item) (int, error)
	Update(ctx context.Context, list string, id int, values Item) error
	Delete(ctx context.Context, list string, id int) error
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

func validateNames(list string, fields ...string) error {
	if !identRe.MatchString(list) {
		return fmt.Errorf("%w: %q", ErrInvalidName, list)
	}
	for _, f := range fields {
		if !identRe.MatchString(f) {
			return fmt.Errorf("%w: %q", ErrInvalidName, f)
		}
	}
	return nil
}
