package recruitment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-backoffice/internal/liststore"
	recruitmenterrors "go-backoffice/internal/recruitment/errors"
)

// Repository is the only code path to the postings list. Every store failure
// comes back as one of the recruitmenterrors kinds; nothing is retried.
//
//go:generate mockgen -source=recruitment_repo.go -destination=mock/recruitment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	ListAll(ctx context.Context) ([]Posting, error)
	// Create does not report the assigned id; list again to observe it.
	Create(ctx context.Context, p Posting) error
	Update(ctx context.Context, p Posting) error
	Delete(ctx context.Context, id int) error
}

type RepositoryOption func(*repository)

// WithSchema reads and writes the list using the field names of s.
func WithSchema(s Schema) RepositoryOption {
	return func(r *repository) {
		r.schema = s
	}
}

type repository struct {
	store  liststore.Store
	list   string
	schema Schema
}

func NewRepository(store liststore.Store, list string, opts ...RepositoryOption) Repository {
	if list == "" {
		list = DefaultListName
	}
	r := &repository{store: store, list: list, schema: CurrentSchema}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		store:  r.store.WithTx(tx),
		list:   r.list,
		schema: r.schema,
	}
}

func (r *repository) ListAll(ctx context.Context) ([]Posting, error) {
	items, err := r.store.Select(ctx, r.list, r.schema.Fields()...)
	if err != nil {
		return nil, recruitmenterrors.ErrFetchFailed.WithErr(err)
	}

	postings := make([]Posting, 0, len(items))
	for _, item := range items {
		p, err := r.decode(item)
		if err != nil {
			return nil, recruitmenterrors.ErrFetchFailed.WithErr(err)
		}
		postings = append(postings, p)
	}
	return postings, nil
}

func (r *repository) Create(ctx context.Context, p Posting) error {
	if _, err := r.store.Add(ctx, r.list, r.encode(p)); err != nil {
		return recruitmenterrors.ErrCreateFailed.WithErr(err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, p Posting) error {
	if !p.Persisted() {
		return recruitmenterrors.ErrMissingID
	}

	if err := r.store.Update(ctx, r.list, p.ID, r.encode(p)); err != nil {
		if errors.Is(err, liststore.ErrItemNotFound) {
			return recruitmenterrors.ErrPostingNotFound.WithErr(err)
		}
		return recruitmenterrors.ErrUpdateFailed.WithErr(err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return recruitmenterrors.ErrInvalidPostingID
	}

	if err := r.store.Delete(ctx, r.list, id); err != nil {
		if errors.Is(err, liststore.ErrItemNotFound) {
			return recruitmenterrors.ErrPostingNotFound.WithErr(err)
		}
		return recruitmenterrors.ErrDeleteFailed.WithErr(err)
	}
	return nil
}

func (r *repository) encode(p Posting) liststore.Item {
	item := liststore.Item{
		r.schema.OfferTitle:       p.OfferTitle,
		r.schema.ShortDescription: p.ShortDescription,
		r.schema.Deadline:         p.Deadline,
		r.schema.City:             string(p.City),
	}
	if r.schema.AttachmentName != "" {
		item[r.schema.AttachmentName] = p.AttachmentName
	}
	return item
}

func (r *repository) decode(item liststore.Item) (Posting, error) {
	id, err := toInt(item[liststore.IDField])
	if err != nil {
		return Posting{}, fmt.Errorf("decode id: %w", err)
	}

	deadline, err := toDate(item[r.schema.Deadline])
	if err != nil {
		return Posting{}, fmt.Errorf("decode deadline of item %d: %w", id, err)
	}

	p := Posting{
		ID:               id,
		OfferTitle:       toString(item[r.schema.OfferTitle]),
		ShortDescription: toString(item[r.schema.ShortDescription]),
		Deadline:         deadline,
		City:             toCity(item[r.schema.City]),
	}
	if r.schema.AttachmentName != "" {
		p.AttachmentName = toString(item[r.schema.AttachmentName])
	}
	return p, nil
}

// toCity normalises a stored city; values outside the known set are kept
// as stored so the caller can still show and fix them.
func toCity(v any) City {
	raw := toString(v)
	if c, err := ParseCity(raw); err == nil {
		return c
	}
	return City(raw)
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		return strconv.Atoi(n)
	case []byte:
		return strconv.Atoi(string(n))
	default:
		return 0, fmt.Errorf("unsupported id type %T", v)
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(s)
	}
}

// toDate keeps only the calendar date of the stored value. A null deadline
// decodes to the zero time.
func toDate(v any) (time.Time, error) {
	var t time.Time
	switch d := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		t = d
	case *time.Time:
		if d == nil {
			return time.Time{}, nil
		}
		t = *d
	case string:
		return parseDateString(d)
	case []byte:
		return parseDateString(string(d))
	default:
		return time.Time{}, fmt.Errorf("unsupported deadline type %T", v)
	}
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), nil
}

func parseDateString(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(DateLayout, s)
}
