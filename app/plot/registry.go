package plot

import (
	"fmt"

	"graphplot/app/lang"
)

// Slot is one named function register.
type Slot struct {
	Text string         // raw text as entered, references intact
	Fn   *lang.Function // compiled, references substituted
}

// Registry holds the fixed set of function slots.
type Registry struct {
	base     byte
	variable string
	slots    [SlotCount]Slot
}

// NewRegistry returns a registry with every slot empty.
func NewRegistry(cfg Config) *Registry {
	r := &Registry{base: cfg.BaseLetter, variable: cfg.Variable}
	for i := range r.slots {
		r.slots[i].Fn = lang.Compile("", r.variable)
	}
	return r
}

// Name returns the letter naming slot i.
func (r *Registry) Name(i int) byte {
	return r.base + byte(i)
}

// Index returns the slot named by letter, if any.
func (r *Registry) Index(letter byte) (int, bool) {
	if letter < r.base || letter >= r.base+SlotCount {
		return 0, false
	}
	return int(letter - r.base), true
}

func (r *Registry) check(i int) error {
	if i < 0 || i >= SlotCount {
		return fmt.Errorf("%w: %d", ErrSlotOutOfRange, i)
	}
	return nil
}

// Get returns the compiled function in slot i.
func (r *Registry) Get(i int) (*lang.Function, error) {
	if err := r.check(i); err != nil {
		return nil, err
	}
	return r.slots[i].Fn, nil
}

// Replace installs fn in slot i. The new function carries a fresh ID, so
// cached values of the previous one are never served again.
func (r *Registry) Replace(i int, fn *lang.Function) error {
	if err := r.check(i); err != nil {
		return err
	}
	r.slots[i].Fn = fn
	return nil
}

// SetText stores the raw text of slot i.
func (r *Registry) SetText(i int, text string) error {
	if err := r.check(i); err != nil {
		return err
	}
	r.slots[i].Text = text
	return nil
}

// Text returns the raw text of slot i.
func (r *Registry) Text(i int) string {
	if r.check(i) != nil {
		return ""
	}
	return r.slots[i].Text
}

// IsValid reports whether slot i holds an evaluable function.
func (r *Registry) IsValid(i int) bool {
	return r.check(i) == nil && r.slots[i].Fn.Valid()
}

// Status returns the state of slot i.
func (r *Registry) Status(i int) lang.Status {
	if r.check(i) != nil {
		return lang.StatusEmpty
	}
	return r.slots[i].Fn.Status
}

// SourceString returns the normalized, fully substituted expression of
// slot i.
func (r *Registry) SourceString(i int) string {
	if r.check(i) != nil {
		return ""
	}
	return r.slots[i].Fn.Source
}

// ConstantDisplayString returns " = value" for a valid constant slot and
// "" otherwise.
func (r *Registry) ConstantDisplayString(i int) string {
	if !r.IsValid(i) || !r.slots[i].Fn.IsConstant {
		return ""
	}
	return " = " + lang.FormatConstant(r.slots[i].Fn.Constant)
}

// Functions returns the compiled functions of all slots in order.
func (r *Registry) Functions() []*lang.Function {
	fns := make([]*lang.Function, SlotCount)
	for i := range r.slots {
		fns[i] = r.slots[i].Fn
	}
	return fns
}
