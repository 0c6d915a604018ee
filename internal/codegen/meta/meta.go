package meta

// Analysis holds everything derived from the raw driver list before any
// template is rendered. Shared between the analyzer and the C/Rust generators.
type Analysis struct {
	Includes    []string    // extra #include for the source file, deduplicated, first-seen order
	Activations []string    // DRIVER_ACTIVATE_<type>, one per distinct type
	InitOrder   []string    // distinct driver types, first-seen order
	Buffers     []BufferSpec
	BufferSizes SymbolTable // <type>_BUFFER_SIZE -> value, first writer wins
}

// BufferSpec is one receive buffer declared for an interrupt-enabled driver.
type BufferSpec struct {
	Name       string // <peripheral>_BUFFER
	SizeSymbol string // <type>_BUFFER_SIZE
	Driver     string // owning driver name
}

// Ref is the C expression pointing at the buffer object.
func (b BufferSpec) Ref() string { return "&" + b.Name }

// Storage is the backing uint8_t array of the buffer.
func (b BufferSpec) Storage() string { return b.Name + "_BUF" }

// BufferFor returns the buffer registered for a driver name.
func (a *Analysis) BufferFor(driver string) (BufferSpec, bool) {
	for _, b := range a.Buffers {
		if b.Driver == driver {
			return b, true
		}
	}
	return BufferSpec{}, false
}

// SymbolTable is an insertion-ordered symbol -> value map.
type SymbolTable struct {
	keys   []string
	values map[string]string
}

// Set records value for symbol unless the symbol is already known.
// It reports whether the value was stored.
func (s *SymbolTable) Set(symbol, value string) bool {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, ok := s.values[symbol]; ok {
		return false
	}
	s.keys = append(s.keys, symbol)
	s.values[symbol] = value
	return true
}

// Lookup returns the value of a symbol.
func (s *SymbolTable) Lookup(symbol string) (string, bool) {
	v, ok := s.values[symbol]
	return v, ok
}

// Symbols returns the symbols in insertion order.
func (s *SymbolTable) Symbols() []string {
	return append([]string(nil), s.keys...)
}

// Len returns the number of symbols.
func (s *SymbolTable) Len() int { return len(s.keys) }
