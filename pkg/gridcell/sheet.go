package gridcell

import (
	"sort"
	"sync"

	"github.com/ukaji3/gridcell-go/pkg/gridcell/address"
	"github.com/ukaji3/gridcell-go/pkg/gridcell/formula"
	"github.com/ukaji3/gridcell-go/pkg/gridcell/parser"
)

// Cell pairs an address with its raw value.
type Cell struct {
	Addr address.CellAddress
	Raw  string
}

// Sheet is an in-memory grid of raw cell values. Display values are
// memoized until the next write; any Set drops every cached value, since a
// formula anywhere may depend on the changed cell.
//
// A Sheet is safe for concurrent use.
type Sheet struct {
	mu    sync.RWMutex
	cells map[address.CellAddress]string

	cacheMu      sync.Mutex
	cache        map[address.CellAddress]displayResult
	cacheEnabled bool
}

type displayResult struct {
	value string
	err   error
}

// NewSheet creates an empty sheet with memoization enabled.
func NewSheet() *Sheet {
	return &Sheet{
		cells:        make(map[address.CellAddress]string),
		cache:        make(map[address.CellAddress]displayResult),
		cacheEnabled: true,
	}
}

// NewSheetFromCells creates a sheet holding the given raw values.
func NewSheetFromCells(cells map[address.CellAddress]string) *Sheet {
	s := NewSheet()
	for addr, raw := range cells {
		if raw != "" {
			s.cells[addr] = raw
		}
	}
	return s
}

// SetCaching turns memoization on or off. Turning it off drops the cache.
func (s *Sheet) SetCaching(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cacheEnabled = enabled
	s.invalidate()
}

// Set stores a raw value. An empty value clears the cell.
func (s *Sheet) Set(addr address.CellAddress, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if raw == "" {
		delete(s.cells, addr)
	} else {
		s.cells[addr] = raw
	}
	s.invalidate()
}

// SetLabel stores a raw value at a cell given by label, e.g. "C7".
func (s *Sheet) SetLabel(label, raw string) error {
	addr, err := address.ParseCellLabel(label)
	if err != nil {
		return err
	}
	s.Set(addr, raw)
	return nil
}

// Raw returns the raw value at addr, or "" for an empty cell.
func (s *Sheet) Raw(addr address.CellAddress) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cells[addr]
}

// Resolve implements formula.Resolver.
func (s *Sheet) Resolve(addr address.CellAddress) string {
	return s.Raw(addr)
}

// Display returns the display value of the cell at addr.
func (s *Sheet) Display(addr address.CellAddress) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cacheEnabled {
		s.cacheMu.Lock()
		cached, ok := s.cache[addr]
		s.cacheMu.Unlock()
		if ok {
			return cached.value, cached.err
		}
	}

	// the read lock is held for the whole evaluation, so resolve directly
	value, err := formula.EvaluateCell(addr, formula.ResolverFunc(func(a address.CellAddress) string {
		return s.cells[a]
	}))

	if s.cacheEnabled {
		s.cacheMu.Lock()
		s.cache[addr] = displayResult{value: value, err: err}
		s.cacheMu.Unlock()
	}
	return value, err
}

// DisplayLabel returns the display value of the cell given by label.
func (s *Sheet) DisplayLabel(label string) (string, error) {
	addr, err := address.ParseCellLabel(label)
	if err != nil {
		return "", err
	}
	return s.Display(addr)
}

// Len returns the number of non-empty cells.
func (s *Sheet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cells)
}

// Cells returns the non-empty cells in row-major order.
func (s *Sheet) Cells() []Cell {
	s.mu.RLock()
	cells := make([]Cell, 0, len(s.cells))
	for addr, raw := range s.cells {
		cells = append(cells, Cell{Addr: addr, Raw: raw})
	}
	s.mu.RUnlock()

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Addr.Row != cells[j].Addr.Row {
			return cells[i].Addr.Row < cells[j].Addr.Row
		}
		return cells[i].Addr.Col < cells[j].Addr.Col
	})
	return cells
}

// UsedRange returns the bounding range of non-empty cells, e.g. "A1:D10".
func (s *Sheet) UsedRange() string {
	return parser.UsedRange(s.addresses())
}

func (s *Sheet) addresses() []address.CellAddress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	addrs := make([]address.CellAddress, 0, len(s.cells))
	for addr := range s.cells {
		addrs = append(addrs, addr)
	}
	return addrs
}

// invalidate drops memoized display values. Callers hold s.mu for writing.
func (s *Sheet) invalidate() {
	s.cacheMu.Lock()
	clear(s.cache)
	s.cacheMu.Unlock()
}
