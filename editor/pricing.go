package editor

// PriceHook is called with the new total after every priced change.
type PriceHook func(total float64)

// Ledger accumulates the price of everything placed in a scene. Commands
// feed it deltas; undoing a command feeds the inverse delta.
type Ledger struct {
	total float64
	hook  PriceHook
}

func NewLedger(hook PriceHook) *Ledger {
	return &Ledger{hook: hook}
}

func (l *Ledger) Total() float64 { return l.total }

// SetHook replaces the recalculation hook.
func (l *Ledger) SetHook(hook PriceHook) { l.hook = hook }

// apply adds delta and fires the hook, even for a zero delta, so that
// listeners refresh after any command touching priced attributes.
func (l *Ledger) apply(delta float64) {
	l.total += delta
	if l.hook != nil {
		l.hook(l.total)
	}
}
