package app

// Toggle is a boolean open state that re-renders its owner on change.
type Toggle struct {
	open     bool
	onChange func(open bool)
}

// NewToggle starts in the given state. onChange runs after every change,
// never for no-op calls.
func NewToggle(initial bool, onChange func(open bool)) *Toggle {
	return &Toggle{open: initial, onChange: onChange}
}

// IsOpen reports the current state.
func (t *Toggle) IsOpen() bool { return t.open }

// Open sets the state to true.
func (t *Toggle) Open() { t.set(true) }

// Close sets the state to false.
func (t *Toggle) Close() { t.set(false) }

// Toggle flips the state.
func (t *Toggle) Toggle() { t.set(!t.open) }

func (t *Toggle) set(open bool) {
	if t.open == open {
		return
	}
	t.open = open
	if t.onChange != nil {
		t.onChange(open)
	}
}
