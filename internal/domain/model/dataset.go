package model

// Dataset is an ordered, read-only collection of players.
// Every derived view is a new Dataset; the receiver is never modified.
type Dataset struct {
	records []PlayerRecord
	index   map[string]int
}

// NewDataset copies records into a new Dataset, keeping their order.
// When a name repeats, the first record wins.
func NewDataset(records []PlayerRecord) Dataset {
	d := Dataset{
		records: make([]PlayerRecord, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for _, r := range records {
		if _, dup := d.index[r.Name]; dup {
			continue
		}
		d.index[r.Name] = len(d.records)
		d.records = append(d.records, r.Clone())
	}
	return d
}

// Len returns the number of players.
func (d Dataset) Len() int { return len(d.records) }

// Records returns copies of all players in order.
func (d Dataset) Records() []PlayerRecord {
	out := make([]PlayerRecord, len(d.records))
	for i, r := range d.records {
		out[i] = r.Clone()
	}
	return out
}

// At returns a copy of the i-th player.
func (d Dataset) At(i int) PlayerRecord { return d.records[i].Clone() }

// Names returns player names in dataset order.
func (d Dataset) Names() []string {
	out := make([]string, len(d.records))
	for i, r := range d.records {
		out[i] = r.Name
	}
	return out
}

// Lookup returns a copy of the named player.
func (d Dataset) Lookup(name string) (PlayerRecord, bool) {
	i, ok := d.index[name]
	if !ok {
		return PlayerRecord{}, false
	}
	return d.records[i].Clone(), true
}

// Contains reports whether the named player is present.
func (d Dataset) Contains(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Filter returns a new Dataset with the players keep accepts.
func (d Dataset) Filter(keep func(PlayerRecord) bool) Dataset {
	kept := make([]PlayerRecord, 0, len(d.records))
	for _, r := range d.records {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	return NewDataset(kept)
}

// Qualified returns the players meeting the plate appearance threshold.
func (d Dataset) Qualified() Dataset {
	return d.Filter(func(r PlayerRecord) bool { return r.Qualified })
}

// Column returns the values of m in dataset order and a presence mask.
func (d Dataset) Column(m Metric) ([]float64, []bool) {
	vals := make([]float64, len(d.records))
	present := make([]bool, len(d.records))
	for i, r := range d.records {
		vals[i], present[i] = r.Stats.Get(m)
	}
	return vals, present
}
