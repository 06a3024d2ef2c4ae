package backoffice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go-backoffice/internal/recruitment"

	"go.uber.org/zap"
)

// Messages shown to the operator. Store failure detail goes to the logger only.
const (
	MsgFillAllFields = "Please fill in all fields"
	MsgCreateFailed  = "Error submitting internal recruitment. Please try again."
	MsgUpdateFailed  = "Error updating internal recruitment. Please try again."
	MsgDeleteFailed  = "Error deleting internal recruitment. Please try again."
	MsgFetchFailed   = "Error fetching internal recruitments"
	MsgConfirmDelete = "Are you sure you want to delete this internal recruitment?"
)

var (
	ErrBusy            = errors.New("another action is still in progress")
	ErrIncompleteForm  = errors.New("form is incomplete")
	ErrUnknownPosting  = errors.New("posting is not in the loaded list")
	ErrDeleteCancelled = errors.New("delete cancelled")
	// ErrConfirmerRequired rejects a delete that could not ask the user.
	ErrConfirmerRequired = errors.New("delete needs a confirmer")
)

// DataAccess is the posting store the controller drives. Both
// recruitment.Repository and recruitment.Service satisfy it.
type DataAccess interface {
	ListAll(ctx context.Context) ([]recruitment.Posting, error)
	Create(ctx context.Context, p recruitment.Posting) error
	Update(ctx context.Context, p recruitment.Posting) error
	Delete(ctx context.Context, id int) error
}

type Notifier interface {
	Notify(msg string)
}

type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// View is a snapshot of the controller state.
type View struct {
	Form     Form
	Target   EditTarget
	Postings []recruitment.Posting
}

// Controller owns the form, the loaded posting list and the edit target.
// One action chain runs at a time; a second Submit or Delete while a chain
// is in flight fails with ErrBusy.
type Controller struct {
	data   DataAccess
	notify Notifier
	logger *zap.Logger

	mu       sync.Mutex
	inFlight bool
	form     Form
	target   EditTarget
	postings []recruitment.Posting
}

func NewController(data DataAccess, notify Notifier, logger ...*zap.Logger) *Controller {
	l := zap.L().Named("backoffice.controller")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("backoffice.controller")
	}
	if notify == nil {
		notify = NotifierFunc(func(string) {})
	}
	return &Controller{data: data, notify: notify, logger: l}
}

func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return ErrBusy
	}
	c.inFlight = true
	return nil
}

func (c *Controller) end() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

// Mount loads the posting list. On failure the list stays as it was (empty
// on first mount) and the error is logged and returned.
func (c *Controller) Mount(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	postings, err := c.data.ListAll(ctx)
	if err != nil {
		c.logger.Error("fetch internal recruitments failed", zap.Error(err))
		return err
	}

	c.mu.Lock()
	c.postings = postings
	c.mu.Unlock()
	return nil
}

// StartEdit copies the loaded posting id into the form and holds it as the
// edit target.
func (c *Controller) StartEdit(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return ErrBusy
	}

	for _, p := range c.postings {
		if p.ID == id {
			c.target = Holding(p)
			c.form = FormFromPosting(p)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownPosting, id)
}

// CancelEdit drops the edit target and clears the form.
func (c *Controller) CancelEdit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return ErrBusy
	}
	c.target = Empty()
	c.form = Form{}
	return nil
}

func (c *Controller) SetField(field Field, raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return ErrBusy
	}
	return c.form.Set(field, raw)
}

// Submit creates the form's posting, or updates the held one, then reloads
// the list and clears the form. An incomplete form is rejected without any
// store call.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrBusy
	}
	form, target := c.form, c.target
	if missing := form.Missing(); len(missing) > 0 {
		c.mu.Unlock()
		c.notify.Notify(MsgFillAllFields)
		return fmt.Errorf("%w: missing %s", ErrIncompleteForm, strings.Join(missing, ", "))
	}
	c.inFlight = true
	c.mu.Unlock()
	defer c.end()

	held, editing := target.Held()
	var err error
	if editing {
		err = c.data.Update(ctx, form.Posting(held.ID))
	} else {
		err = c.data.Create(ctx, form.Posting(0))
	}
	if err != nil {
		msg := MsgCreateFailed
		if editing {
			msg = MsgUpdateFailed
		}
		c.logger.Error("submit internal recruitment failed",
			zap.Bool("editing", editing),
			zap.Int("posting_id", held.ID),
			zap.Error(err),
		)
		c.notify.Notify(msg)
		return err
	}

	c.refresh(ctx, func() {
		c.form = Form{}
		c.target = Empty()
	})
	return nil
}

// Delete asks confirm, deletes posting id and reloads the list. Deleting the
// held posting also drops the edit target and clears the form. A nil confirm
// is rejected before anything else happens.
func (c *Controller) Delete(ctx context.Context, id int, confirm Confirmer) error {
	if confirm == nil {
		return ErrConfirmerRequired
	}
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if !confirm.Confirm(MsgConfirmDelete) {
		return ErrDeleteCancelled
	}

	if err := c.data.Delete(ctx, id); err != nil {
		c.logger.Error("delete internal recruitment failed", zap.Int("posting_id", id), zap.Error(err))
		c.notify.Notify(MsgDeleteFailed)
		return err
	}

	c.refresh(ctx, func() {
		if held, ok := c.target.Held(); ok && held.ID == id {
			c.target = Empty()
			c.form = Form{}
		}
	})
	return nil
}

// refresh reloads the list after a committed mutation. apply runs under the
// state lock whether or not the reload succeeds; a failed reload keeps the
// previous list.
func (c *Controller) refresh(ctx context.Context, apply func()) {
	postings, err := c.data.ListAll(ctx)

	c.mu.Lock()
	apply()
	if err == nil {
		c.postings = postings
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("fetch internal recruitments failed", zap.Error(err))
		c.notify.Notify(MsgFetchFailed)
	}
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	postings := make([]recruitment.Posting, len(c.postings))
	copy(postings, c.postings)
	return View{Form: c.form, Target: c.target, Postings: postings}
}
