package wizard

import (
	"github.com/Iron-Ham/lifespan/internal/errors"
	"github.com/Iron-Ham/lifespan/internal/life"
)

// EntryState is the reconciliation state of one activity label.
type EntryState int

const (
	// Unsaved entries exist only locally (a preset not yet added, or a draft).
	Unsaved EntryState = iota
	// Saved entries mirror the server and are frozen until BeginEdit.
	Saved
	// Editing entries are saved entries whose local value is being changed.
	Editing
)

// String returns a short name for the state.
func (s EntryState) String() string {
	switch s {
	case Unsaved:
		return "unsaved"
	case Saved:
		return "saved"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// ErrFrozen is returned when a saved entry is changed without entering edit mode.
var ErrFrozen = errors.New("activity is saved; edit it first")

// Entry is a snapshot of one label in an ActivityBook.
type Entry struct {
	Label string
	State EntryState

	// Local is the hours/week the user has entered. It is meaningful for
	// Unsaved and Editing entries.
	Local float64

	// Server is the last known server hours/week. It is 0 when only the summary
	// has been seen for the label.
	Server float64

	// Years is the last fetched server contribution in years.
	Years float64

	// ID is the server activity ID, 0 until the list endpoint reported it.
	ID     int64
	Source string
}

// ActivityBook reconciles local edits with the server snapshot, one tagged
// state per label. Labels are ordered by first appearance.
type ActivityBook struct {
	entries map[string]*Entry
	order   []string
}

// NewActivityBook creates a book seeded with Unsaved presets.
func NewActivityBook(presets ...string) *ActivityBook {
	b := &ActivityBook{entries: make(map[string]*Entry)}
	for _, p := range presets {
		b.ensure(p).Source = life.SourcePreset
	}
	return b
}

func (b *ActivityBook) ensure(label string) *Entry {
	if e, ok := b.entries[label]; ok {
		return e
	}
	e := &Entry{Label: label, State: Unsaved}
	b.entries[label] = e
	b.order = append(b.order, label)
	return e
}

// Entry returns the entry for label.
func (b *ActivityBook) Entry(label string) (Entry, bool) {
	e, ok := b.entries[label]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Entries returns all entries in order.
func (b *ActivityBook) Entries() []Entry {
	out := make([]Entry, 0, len(b.order))
	for _, label := range b.order {
		out = append(out, *b.entries[label])
	}
	return out
}

// Len returns the number of labels in the book.
func (b *ActivityBook) Len() int {
	return len(b.order)
}

// SetLocal records a locally entered value. Unknown labels start Unsaved.
// Saved entries refuse the change with ErrFrozen.
func (b *ActivityBook) SetLocal(label string, hours float64) error {
	e := b.ensure(label)
	if e.State == Saved {
		return ErrFrozen
	}
	e.Local = hours
	return nil
}

// MarkSaved moves label to Saved with the committed hours, from any state.
func (b *ActivityBook) MarkSaved(label string, hours float64) {
	e := b.ensure(label)
	e.State = Saved
	e.Server = hours
	e.Local = hours
}

// BeginEdit moves a Saved entry to Editing, seeding the local value from the
// server value.
func (b *ActivityBook) BeginEdit(label string) error {
	e, ok := b.entries[label]
	if !ok || e.State != Saved {
		return errors.NewValidationError("Add the activity before editing it.").WithField(label)
	}
	e.State = Editing
	e.Local = e.Server
	return nil
}

// CancelEdit returns an Editing entry to Saved, dropping the local value.
func (b *ActivityBook) CancelEdit(label string) {
	if e, ok := b.entries[label]; ok && e.State == Editing {
		e.State = Saved
		e.Local = e.Server
	}
}

// Reconcile overlays a fetched snapshot. Every label present in items becomes
// Saved unless it is being edited. When activities is non-nil (the list
// endpoint answered) server hours and IDs are hydrated from it, and saved
// labels the server no longer reports fall back to Unsaved.
func (b *ActivityBook) Reconcile(items []life.ActivityYears, activities []life.Activity) {
	present := make(map[string]bool, len(items))
	for _, it := range items {
		present[it.Label] = true
		e := b.ensure(it.Label)
		e.Years = it.Years
		if e.State == Unsaved {
			e.State = Saved
		}
	}

	if activities == nil {
		return
	}

	for _, a := range activities {
		if !a.IsActive {
			continue
		}
		present[a.Label] = true
		e := b.ensure(a.Label)
		e.ID = a.ID
		e.Server = a.HoursPerWeek
		if a.Source != "" {
			e.Source = a.Source
		}
		switch e.State {
		case Unsaved:
			e.State = Saved
			e.Local = a.HoursPerWeek
		case Saved:
			e.Local = a.HoursPerWeek
		}
	}

	for _, label := range b.order {
		e := b.entries[label]
		if e.State == Saved && !present[label] {
			e.State = Unsaved
			e.Years = 0
			e.ID = 0
		}
	}
}
