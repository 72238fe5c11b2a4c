package dom

// MutationRecord describes one attribute write.
type MutationRecord struct {
	Target        *Element
	AttributeName string
	OldValue      string
	HadOldValue   bool
}

// MutationCallback receives the records queued since the last delivery.
type MutationCallback func(records []MutationRecord, o *MutationObserver)

// MutationObserver collects attribute mutations on the elements it observes
// and hands them to its callback at the next Document.Flush.
type MutationObserver struct {
	doc      *Document
	callback MutationCallback
	targets  map[*Element][]string
	records  []MutationRecord
	queued   bool
}

// NewMutationObserver returns an observer that is not yet watching anything.
func (d *Document) NewMutationObserver(cb MutationCallback) *MutationObserver {
	return &MutationObserver{doc: d, callback: cb, targets: make(map[*Element][]string)}
}

// Observe starts watching target for writes to the named attributes. With no
// names every attribute is watched. Observing the same target again replaces
// its filter.
func (o *MutationObserver) Observe(target *Element, attributes ...string) {
	if _, ok := o.targets[target]; !ok {
		target.observers = append(target.observers, o)
	}
	o.targets[target] = append([]string(nil), attributes...)
}

// Disconnect stops watching every target and drops undelivered records.
func (o *MutationObserver) Disconnect() {
	for t := range o.targets {
		for i, x := range t.observers {
			if x == o {
				t.observers = append(t.observers[:i:i], t.observers[i+1:]...)
				break
			}
		}
	}
	o.targets = make(map[*Element][]string)
	o.records = nil
}

// Observing reports whether target is being watched.
func (o *MutationObserver) Observing(target *Element) bool {
	_, ok := o.targets[target]
	return ok
}

// TakeRecords returns and clears the undelivered records.
func (o *MutationObserver) TakeRecords() []MutationRecord {
	r := o.records
	o.records = nil
	return r
}

func (o *MutationObserver) watches(target *Element, name string) bool {
	filter, ok := o.targets[target]
	if !ok {
		return false
	}
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if f == name {
			return true
		}
	}
	return false
}

func (o *MutationObserver) enqueue(r MutationRecord) {
	o.records = append(o.records, r)
	if !o.queued {
		o.queued = true
		o.doc.pending = append(o.doc.pending, o)
	}
}

// Flush delivers pending mutation records, observer by observer in the order
// they first queued, until nothing is pending. Records queued by a callback
// are delivered in the same flush. A nested call returns immediately.
func (d *Document) Flush() {
	if d.flushing {
		return
	}
	d.flushing = true
	defer func() { d.flushing = false }()

	for len(d.pending) > 0 {
		batch := d.pending
		d.pending = nil
		for _, o := range batch {
			o.queued = false
			records := o.TakeRecords()
			if len(records) == 0 {
				continue
			}
			o.callback(records, o)
		}
	}
}
