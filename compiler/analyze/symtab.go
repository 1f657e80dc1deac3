package analyze

type (
	// symtab keeps every declared name in exactly one of three maps.
	// Slots come from one counter in declaration order.
	symtab struct {
		consts map[string]int32
		vars   map[string]int32
		uninit map[string]int32

		next int32
	}
)

func newSymtab() *symtab {
	return &symtab{
		consts: make(map[string]int32),
		vars:   make(map[string]int32),
		uninit: make(map[string]int32),
	}
}

func (t *symtab) declared(name string) bool {
	_, c := t.consts[name]
	_, v := t.vars[name]
	_, u := t.uninit[name]

	return c || v || u
}

func (t *symtab) isConst(name string) bool {
	_, ok := t.consts[name]
	return ok
}

func (t *symtab) isUninit(name string) bool {
	_, ok := t.uninit[name]
	return ok
}

func (t *symtab) addConst(name string) int32  { return t.add(t.consts, name) }
func (t *symtab) addVar(name string) int32    { return t.add(t.vars, name) }
func (t *symtab) addUninit(name string) int32 { return t.add(t.uninit, name) }

func (t *symtab) add(m map[string]int32, name string) (slot int32) {
	if t.declared(name) {
		panic("symbol declared twice: " + name)
	}

	slot = t.next
	t.next++

	m[name] = slot

	return slot
}

// initialize moves an uninitialized variable to the initialized ones.
// It does nothing for any other name.
func (t *symtab) initialize(name string) {
	slot, ok := t.uninit[name]
	if !ok {
		return
	}

	delete(t.uninit, name)

	t.vars[name] = slot
}

func (t *symtab) slot(name string) (int32, bool) {
	for _, m := range []map[string]int32{t.consts, t.vars, t.uninit} {
		if s, ok := m[name]; ok {
			return s, true
		}
	}

	return 0, false
}

func (t *symtab) size() int { return int(t.next) }
