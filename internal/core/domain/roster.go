package domain

// RosterEntry is one eligible voter from the allow-list
type RosterEntry struct {
	RollNumber string `json:"roll_number"`
	Email      string `json:"email"`
	Branch     string `json:"branch"`
	Year       string `json:"year"`
}

// Roster is the immutable allow-list of eligible voters, keyed by
// normalized roll number. Build it once with NewRoster.
type Roster struct {
	entries []RosterEntry
	index   map[string]int
}

// NewRoster builds a roster from entries. Roll numbers are normalized;
// entries with an empty roll number are dropped and the first occurrence
// of a duplicate roll number wins.
func NewRoster(entries []RosterEntry) *Roster {
	r := &Roster{
		entries: make([]RosterEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		e.RollNumber = NormalizeRoll(e.RollNumber)
		if e.RollNumber == "" {
			continue
		}
		if _, dup := r.index[e.RollNumber]; dup {
			continue
		}
		r.index[e.RollNumber] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r
}

// Lookup finds the entry for a roll number
func (r *Roster) Lookup(roll string) (RosterEntry, bool) {
	if r == nil {
		return RosterEntry{}, false
	}
	i, ok := r.index[NormalizeRoll(roll)]
	if !ok {
		return RosterEntry{}, false
	}
	return r.entries[i], true
}

// Len returns the number of eligible voters
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Entries returns a copy of all entries in source order
func (r *Roster) Entries() []RosterEntry {
	if r == nil {
		return nil
	}
	out := make([]RosterEntry, len(r.entries))
	copy(out, r.entries)
	return out
}
