package solver

// DefaultTableSize is prime so that key % size spreads keys evenly.
const DefaultTableSize = 8388593

// TranspositionTable caches upper bounds of already searched positions.
// Entries are replaced unconditionally on collision.
type TranspositionTable struct {
	keys   []uint64
	values []uint8
}

func NewTranspositionTable(size int) *TranspositionTable {
	if size <= 0 {
		size = DefaultTableSize
	}
	return &TranspositionTable{
		keys:   make([]uint64, size),
		values: make([]uint8, size),
	}
}

func (t *TranspositionTable) index(key uint64) int {
	return int(key % uint64(len(t.keys)))
}

func (t *TranspositionTable) Put(key uint64, value uint8) {
	i := t.index(key)
	t.keys[i] = key
	t.values[i] = value
}

// Get returns 0 when key is not stored.
func (t *TranspositionTable) Get(key uint64) uint8 {
	i := t.index(key)
	if t.keys[i] == key {
		return t.values[i]
	}
	return 0
}

func (t *TranspositionTable) Reset() {
	clear(t.keys)
	clear(t.values)
}

func (t *TranspositionTable) Size() int {
	return len(t.keys)
}
