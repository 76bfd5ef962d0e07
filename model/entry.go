package model

// EntryIDField is the reserved key that identifies an entry inside its catalog.
const EntryIDField = "entryID"

// Entry is a flexible map representing one catalog row.
// Every key other than entryID is a lookup field (e.g. "species", "season") or a payload
// value attached to the row. A nil value, or a key that is missing altogether, is a wildcard.
// Example: entry["species"], entry["min_count"]
type Entry map[string]interface{}

// GetEntryID returns the entryID if it's stored in the entry map under "entryID" key.
func (e Entry) GetEntryID() (string, bool) {
	if id, ok := e[EntryIDField]; ok {
		if str, sok := id.(string); sok {
			if str != "" {
				return str, true
			}
		}
	}
	return "", false
}

// Clone returns a shallow copy of the entry. Values are shared, the map is not.
func (e Entry) Clone() Entry {
	if e == nil {
		return nil
	}
	clone := make(Entry, len(e))
	for k, v := range e {
		clone[k] = v
	}
	return clone
}

// CloneEntries copies a slice of entries so that callers can't reach stored maps.
func CloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
