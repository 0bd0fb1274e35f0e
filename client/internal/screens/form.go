package screens

import (
	"context"
	"sync"

	"github.com/Skotchmaster/inventory/client/internal/inventory"
	"github.com/Skotchmaster/inventory/client/internal/remote"
	"github.com/Skotchmaster/inventory/pkg/logging"
)

type FormMode int

const (
	ModeCreate FormMode = iota
	ModeUpdate
)

// Form collects the text for one record. Both modes parse and validate
// before anything is sent.
type Form struct {
	store  remote.Store
	kind   string
	timing Timing
	mode   FormMode
	id     string

	mu       sync.Mutex
	name     string
	quantity string
	price    string
}

func NewCreateForm(store remote.Store, timing Timing) *Form {
	return &Form{store: store, kind: inventory.Kind, timing: timing, mode: ModeCreate}
}

// NewEditForm pre-fills the fields from record.
func NewEditForm(store remote.Store, record inventory.Record, timing Timing) *Form {
	return &Form{
		store:    store,
		kind:     inventory.Kind,
		timing:   timing,
		mode:     ModeUpdate,
		id:       record.ID,
		name:     record.Name,
		quantity: inventory.FormatQuantity(record.Quantity),
		price:    inventory.FormatAmount(record.Price),
	}
}

func (f *Form) Mode() FormMode { return f.mode }
func (f *Form) RecordID() string { return f.id }

func (f *Form) SetName(s string) {
	f.mu.Lock()
	f.name = s
	f.mu.Unlock()
}

func (f *Form) SetQuantity(s string) {
	f.mu.Lock()
	f.quantity = s
	f.mu.Unlock()
}

func (f *Form) SetPrice(s string) {
	f.mu.Lock()
	f.price = s
	f.mu.Unlock()
}

// Values returns the current name, quantity and price text.
func (f *Form) Values() (string, string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.name, f.quantity, f.price
}

func (f *Form) Validate() (inventory.Fields, error) {
	return inventory.ParseFields(f.Values())
}

func (f *Form) titles() (ok, failed, message string) {
	if f.mode == ModeUpdate {
		return "Success", "Update Failed", "Item updated successfully!"
	}
	return "Success", "Add Failed", "Item added successfully!"
}

// Submit sends the record. Field text survives any failure.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	okTitle, failTitle, okMessage := f.titles()
	l := logging.FromContext(ctx).With("screen", "form", "mode", f.mode, "record_id", f.id)

	fields, err := f.Validate()
	if err != nil {
		l.Info("validation_failed", "error", err)
		return Outcome{Notification: f.timing.failure(failTitle, err.Error())}, err
	}

	if f.mode == ModeUpdate {
		err = f.store.UpdateRecord(ctx, f.kind, f.id, fields)
	} else {
		err = f.store.InsertRecord(ctx, f.kind, fields)
	}
	if err != nil {
		l.Warn("submit_failed", "error", err)
		return Outcome{Notification: f.timing.failure(failTitle, err.Error())}, err
	}

	f.mu.Lock()
	f.name, f.quantity, f.price = "", "", ""
	f.mu.Unlock()

	l.Info("submit_success")
	return Outcome{
		Notification: f.timing.success(okTitle, okMessage),
		Transition:   &Transition{Kind: Back, After: f.timing.NavigateDelay},
	}, nil
}

func (f *Form) Cancel() Outcome {
	return Outcome{Transition: &Transition{Kind: Back}}
}
