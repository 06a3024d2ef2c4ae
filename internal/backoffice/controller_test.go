package backoffice_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-backoffice/internal/backoffice"
	"go-backoffice/internal/liststore"
	"go-backoffice/internal/recruitment"
	recruitmenterrors "go-backoffice/internal/recruitment/errors"

	"github.com/stretchr/testify/assert"
)

type fakeData struct {
	mu       sync.Mutex
	postings []recruitment.Posting

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	// block, when set, holds Create until it is closed.
	block   chan struct{}
	entered chan struct{}

	listCalls int
	created   []recruitment.Posting
	updated   []recruitment.Posting
	deleted   []int
}

func (f *fakeData) ListAll(ctx context.Context) ([]recruitment.Posting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]recruitment.Posting, len(f.postings))
	copy(out, f.postings)
	return out, nil
}

func (f *fakeData) Create(ctx context.Context, p recruitment.Posting) error {
	if f.block != nil {
		close(f.entered)
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, p)
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = len(f.postings) + 1
	f.postings = append(f.postings, p)
	return nil
}

func (f *fakeData) Update(ctx context.Context, p recruitment.Posting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, p)
	return f.updateErr
}

func (f *fakeData) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeData) storeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created) + len(f.updated) + len(f.deleted)
}

type notes struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notes) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func engineer(id int) recruitment.Posting {
	return recruitment.Posting{
		ID:               id,
		OfferTitle:       "Engineer",
		ShortDescription: "Backend engineer",
		Deadline:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		City:             recruitment.CityRabat,
		AttachmentName:   "cv.pdf",
	}
}

func fillForm(t *testing.T, c *backoffice.Controller) {
	t.Helper()
	assert.NoError(t, c.SetField(backoffice.FieldOfferTitle, "Analyst"))
	assert.NoError(t, c.SetField(backoffice.FieldShortDescription, "Data analyst"))
	assert.NoError(t, c.SetField(backoffice.FieldDeadline, "2024-06-30"))
	assert.NoError(t, c.SetField(backoffice.FieldCity, "fes"))
	assert.NoError(t, c.SetField(backoffice.FieldAttachmentName, "brief.pdf"))
}

func TestController_Mount(t *testing.T) {
	t.Run("loads postings", func(t *testing.T) {
		data := &fakeData{postings: []recruitment.Posting{engineer(1)}}
		c := backoffice.NewController(data, nil)

		assert.NoError(t, c.Mount(context.Background()))
		assert.Equal(t, []recruitment.Posting{engineer(1)}, c.View().Postings)
	})

	t.Run("failure keeps empty list", func(t *testing.T) {
		data := &fakeData{listErr: recruitmenterrors.ErrFetchFailed}
		c := backoffice.NewController(data, nil)

		err := c.Mount(context.Background())

		assert.True(t, errors.Is(err, recruitmenterrors.ErrFetchFailed))
		assert.Empty(t, c.View().Postings)
	})
}

func TestController_SubmitIncomplete(t *testing.T) {
	for _, missing := range backoffice.Fields {
		t.Run(string(missing), func(t *testing.T) {
			data := &fakeData{postings: []recruitment.Posting{engineer(1)}}
			n := &notes{}
			c := backoffice.NewController(data, n)
			assert.NoError(t, c.Mount(context.Background()))
			fillForm(t, c)
			assert.NoError(t, c.SetField(missing, ""))
			before := c.View()

			err := c.Submit(context.Background())

			assert.True(t, errors.Is(err, backoffice.ErrIncompleteForm))
			assert.Zero(t, data.storeCalls())
			assert.Equal(t, []string{backoffice.MsgFillAllFields}, n.msgs)
			assert.Equal(t, before, c.View())
		})
	}
}

func TestController_SubmitCreate(t *testing.T) {
	data := &fakeData{}
	c := backoffice.NewController(data, nil)
	fillForm(t, c)

	assert.NoError(t, c.Submit(context.Background()))

	assert.Len(t, data.created, 1)
	assert.Zero(t, data.created[0].ID)
	assert.Equal(t, recruitment.CityFes, data.created[0].City)

	v := c.View()
	assert.Equal(t, backoffice.Form{}, v.Form)
	assert.True(t, v.Target.IsEmpty())
	assert.Len(t, v.Postings, 1)
	assert.Equal(t, 1, v.Postings[0].ID)
	assert.Equal(t, "Analyst", v.Postings[0].OfferTitle)
}

func TestController_EditSubmitUnchanged(t *testing.T) {
	p := engineer(1)
	data := &fakeData{postings: []recruitment.Posting{p, engineer(2)}}
	c := backoffice.NewController(data, nil)
	assert.NoError(t, c.Mount(context.Background()))

	assert.NoError(t, c.StartEdit(1))
	held, ok := c.View().Target.Held()
	assert.True(t, ok)
	assert.Equal(t, p, held)

	assert.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, []recruitment.Posting{p}, data.updated)
	assert.Empty(t, data.created)
	assert.True(t, c.View().Target.IsEmpty())
}

func TestController_EditWorksOnCopy(t *testing.T) {
	data := &fakeData{postings: []recruitment.Posting{engineer(1)}}
	c := backoffice.NewController(data, nil)
	assert.NoError(t, c.Mount(context.Background()))
	assert.NoError(t, c.StartEdit(1))

	assert.NoError(t, c.SetField(backoffice.FieldOfferTitle, "Lead"))

	v := c.View()
	assert.Equal(t, "Engineer", v.Postings[0].OfferTitle)
	held, _ := v.Target.Held()
	assert.Equal(t, "Engineer", held.OfferTitle)
	assert.Equal(t, "Lead", v.Form.OfferTitle)
}

func TestController_StartEditUnknown(t *testing.T) {
	c := backoffice.NewController(&fakeData{}, nil)

	err := c.StartEdit(5)

	assert.True(t, errors.Is(err, backoffice.ErrUnknownPosting))
	assert.True(t, c.View().Target.IsEmpty())
}

func TestController_CancelEdit(t *testing.T) {
	data := &fakeData{postings: []recruitment.Posting{engineer(1)}}
	c := backoffice.NewController(data, nil)
	assert.NoError(t, c.Mount(context.Background()))
	assert.NoError(t, c.StartEdit(1))

	assert.NoError(t, c.CancelEdit())

	v := c.View()
	assert.True(t, v.Target.IsEmpty())
	assert.Equal(t, backoffice.Form{}, v.Form)
}

func TestController_CreateFails(t *testing.T) {
	data := &fakeData{
		postings:  []recruitment.Posting{engineer(1)},
		createErr: recruitmenterrors.ErrCreateFailed.WithErr(errors.New("503")),
	}
	n := &notes{}
	c := backoffice.NewController(data, n)
	assert.NoError(t, c.Mount(context.Background()))
	fillForm(t, c)
	before := c.View()

	err := c.Submit(context.Background())

	assert.True(t, errors.Is(err, recruitmenterrors.ErrCreateFailed))
	assert.Equal(t, before, c.View())
	assert.Equal(t, "Analyst", c.View().Form.OfferTitle)
	assert.Equal(t, []string{backoffice.MsgCreateFailed}, n.msgs)
}

func TestController_UpdateFails(t *testing.T) {
	data := &fakeData{
		postings:  []recruitment.Posting{engineer(1)},
		updateErr: recruitmenterrors.ErrUpdateFailed,
	}
	n := &notes{}
	c := backoffice.NewController(data, n)
	assert.NoError(t, c.Mount(context.Background()))
	assert.NoError(t, c.StartEdit(1))

	err := c.Submit(context.Background())

	assert.Error(t, err)
	assert.False(t, c.View().Target.IsEmpty())
	assert.Equal(t, []string{backoffice.MsgUpdateFailed}, n.msgs)
}

func TestController_RefreshFailsAfterCreate(t *testing.T) {
	data := &fakeData{postings: []recruitment.Posting{engineer(1)}}
	n := &notes{}
	c := backoffice.NewController(data, n)
	assert.NoError(t, c.Mount(context.Background()))
	fillForm(t, c)
	data.listErr = recruitmenterrors.ErrFetchFailed

	assert.NoError(t, c.Submit(context.Background()))

	v := c.View()
	assert.Equal(t, backoffice.Form{}, v.Form)
	assert.Equal(t, []recruitment.Posting{engineer(1)}, v.Postings)
	assert.Equal(t, []string{backoffice.MsgFetchFailed}, n.msgs)
}

func TestController_Delete(t *testing.T) {
	yes := backoffice.ConfirmerFunc(func(string) bool { return true })
	no := backoffice.ConfirmerFunc(func(string) bool { return false })

	t.Run("cancelled - no store call", func(t *testing.T) {
		data := &fakeData{postings: []recruitment.Posting{engineer(1)}}
		c := backoffice.NewController(data, nil)

		err := c.Delete(context.Background(), 1, no)

		assert.True(t, errors.Is(err, backoffice.ErrDeleteCancelled))
		assert.Zero(t, data.storeCalls())
	})

	t.Run("nil confirmer - rejected without store call", func(t *testing.T) {
		data := &fakeData{postings: []recruitment.Posting{engineer(1)}}
		n := &notes{}
		c := backoffice.NewController(data, n)
		assert.NoError(t, c.Mount(context.Background()))
		calls := data.storeCalls()

		err := c.Delete(context.Background(), 1, nil)

		assert.ErrorIs(t, err, backoffice.ErrConfirmerRequired)
		assert.Equal(t, calls, data.storeCalls())
		assert.Len(t, c.View().Postings, 1)
		assert.Empty(t, n.msgs)
	})

	t.Run("failure notifies and keeps list", func(t *testing.T) {
		data := &fakeData{
			postings:  []recruitment.Posting{engineer(1)},
			deleteErr: recruitmenterrors.ErrDeleteFailed,
		}
		n := &notes{}
		c := backoffice.NewController(data, n)
		assert.NoError(t, c.Mount(context.Background()))

		err := c.Delete(context.Background(), 1, yes)

		assert.True(t, errors.Is(err, recruitmenterrors.ErrDeleteFailed))
		assert.Len(t, c.View().Postings, 1)
		assert.Equal(t, []string{backoffice.MsgDeleteFailed}, n.msgs)
	})

	t.Run("deleting held posting resets target", func(t *testing.T) {
		data := &fakeData{postings: []recruitment.Posting{engineer(1)}}
		c := backoffice.NewController(data, nil)
		assert.NoError(t, c.Mount(context.Background()))
		assert.NoError(t, c.StartEdit(1))

		assert.NoError(t, c.Delete(context.Background(), 1, yes))

		v := c.View()
		assert.True(t, v.Target.IsEmpty())
		assert.Equal(t, backoffice.Form{}, v.Form)
	})

	t.Run("deleting another posting keeps target", func(t *testing.T) {
		data := &fakeData{postings: []recruitment.Posting{engineer(1), engineer(2)}}
		c := backoffice.NewController(data, nil)
		assert.NoError(t, c.Mount(context.Background()))
		assert.NoError(t, c.StartEdit(1))

		assert.NoError(t, c.Delete(context.Background(), 2, yes))

		held, ok := c.View().Target.Held()
		assert.True(t, ok)
		assert.Equal(t, 1, held.ID)
	})
}

func TestController_BusyWhileInFlight(t *testing.T) {
	data := &fakeData{block: make(chan struct{}), entered: make(chan struct{})}
	c := backoffice.NewController(data, nil)
	fillForm(t, c)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()
	<-data.entered

	assert.ErrorIs(t, c.Submit(context.Background()), backoffice.ErrBusy)
	yes := backoffice.ConfirmerFunc(func(string) bool { return true })
	assert.ErrorIs(t, c.Delete(context.Background(), 1, yes), backoffice.ErrBusy)
	assert.ErrorIs(t, c.SetField(backoffice.FieldCity, "rabat"), backoffice.ErrBusy)

	close(data.block)
	assert.NoError(t, <-done)
	assert.Len(t, data.created, 1)
	assert.Empty(t, data.deleted)
}

func TestController_WithMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := recruitment.NewRepository(liststore.NewMemoryStore(), recruitment.DefaultListName)
	assert.NoError(t, repo.Create(ctx, engineer(0)))

	c := backoffice.NewController(repo, nil)
	assert.NoError(t, c.Mount(ctx))
	assert.Equal(t, []recruitment.Posting{engineer(1)}, c.View().Postings)

	assert.NoError(t, c.Delete(ctx, 1, backoffice.ConfirmerFunc(func(string) bool { return true })))

	assert.Empty(t, c.View().Postings)
	postings, err := repo.ListAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, postings)
}
