package dat

// Universe is the process-wide bundle of immortal state the value
// model needs regardless of which Allocator (heap) is in play: the
// class registry, the interned-symbol table, the small-int and
// ASCII-string caches, the empty-container singletons, and the map
// lookup cache. Exactly one Universe exists per running process; all
// of this state is immortal and never swept.
//
// A Universe is built once, before any Allocator, since several of
// its own singletons (empty List, empty Map, small Ints) are
// themselves Values that must already carry a valid header by the
// time ordinary allocation starts.
type Universe struct {
	classes *ClassRegistry
	symbols *symbolTable

	classClass       *Class
	classSymbol      *Class
	classInt         *Class
	classString      *Class
	classUniqlet     *Class
	classList        *Class
	classMap         *Class
	classSymbolTable *Class
	classRecord      *Class
	classBox         *Class
	classFunction    *Class
	classGeneric     *Class

	smallInts    [SmallIntHigh - SmallIntLow + 1]*Int
	asciiStrings [128]*String

	emptyList        *List
	emptyMap         *Map
	emptySymbolTable *SymbolTable

	mapCache *mapLookupCache
}

// NewUniverse bootstraps a fresh Universe. The bootstrap order
// resolves the metaclass circularity (Class is its own class; the
// Symbol class does not exist until after some symbols already
// do): first the class registry self-bootstraps the "Class"
// metaclass from a raw name symbol, then every other core class is
// registered, then the symbol table is patched with its now-existing
// class, then the singleton caches are filled in through
// immortalAllocator, which stamps headers but never roots or tracks
// anything, since none of this state is ever swept.
func NewUniverse() *Universe {
	syms := newInternTable()
	nameClassName := syms.internRaw("Class")
	classes := newClassRegistry(nameClassName)

	u := &Universe{classes: classes, symbols: syms}
	u.classClass = classes.classClass

	nameSymbol := syms.internRaw("Symbol")
	// identified=true so unlisted symbols (the only ones that ever pass
	// through Header.Init, since interned symbols are stamped directly
	// by internRaw/patchClass) get the per-instance id their ordering
	// depends on.
	u.classSymbol = classes.Create(nameSymbol, nil, true)
	syms.patchClass(u.classSymbol)

	u.classInt = classes.Create(syms.Intern("Int"), nil, false)
	u.classString = classes.Create(syms.Intern("String"), nil, false)
	u.classUniqlet = classes.Create(syms.Intern("Uniqlet"), nil, true)
	u.classList = classes.Create(syms.Intern("List"), nil, false)
	u.classMap = classes.Create(syms.Intern("Map"), nil, false)
	u.classSymbolTable = classes.Create(syms.Intern("SymbolTable"), nil, false)
	u.classRecord = classes.Create(syms.Intern("Record"), nil, false)
	u.classBox = classes.Create(syms.Intern("Box"), nil, true)
	u.classFunction = classes.Create(syms.Intern("Function"), nil, true)
	u.classGeneric = classes.Create(syms.Intern("Generic"), nil, true)

	u.mapCache = newMapLookupCache()

	im := immortalAllocator{}
	for n := SmallIntLow; n <= SmallIntHigh; n++ {
		v := &Int{n: int32(n)}
		allocAs[*Int](im, u.classInt, v)
		u.smallInts[n-SmallIntLow] = v
	}
	for r := rune(0); r < 128; r++ {
		v := &String{runes: []rune{r}}
		allocAs[*String](im, u.classString, v)
		u.asciiStrings[r] = v
	}

	u.emptyList = allocAs[*List](im, u.classList, &List{})
	u.emptyMap = allocAs[*Map](im, u.classMap, &Map{})
	u.emptySymbolTable = allocAs[*SymbolTable](im, u.classSymbolTable, &SymbolTable{fastIndex: map[int32]int{}})

	return u
}

// Classes returns the process's class registry, for callers (package
// corelib, package eval) that need to create DerivedData classes or
// look classes up by name.
func (u *Universe) Classes() *ClassRegistry { return u.classes }

// ClassGeneric returns the registered "Generic" class, so package
// dispatch can stamp its Generic values with it without depending on
// any of dat's unexported bootstrap machinery.
func (u *Universe) ClassGeneric() *Class { return u.classGeneric }

// ClassSymbol, ClassFunction, ClassBox expose the remaining core
// classes that other packages need to allocate or classify values
// against directly (dispatch and eval, chiefly).
func (u *Universe) ClassSymbol() *Class   { return u.classSymbol }
func (u *Universe) ClassFunction() *Class { return u.classFunction }
func (u *Universe) ClassBox() *Class      { return u.classBox }
func (u *Universe) ClassRecord() *Class   { return u.classRecord }

// Symbols returns the process's interned-symbol table.
func (u *Universe) Symbols() *symbolTable { return u.symbols }

// Intern interns name in the universe's symbol table, creating it if
// necessary. The one entry point package heap and package eval use
// instead of reaching into the unexported symbolTable type directly.
func (u *Universe) Intern(name string) *Symbol { return u.symbols.Intern(name) }

// NewUnlistedSymbol mints a fresh unlisted symbol via a, going through
// the ordinary Allocator discipline (unlike interned symbols,
// unlisted ones are swept like any other heap value).
func (u *Universe) NewUnlistedSymbol(a Allocator, name string) *Symbol {
	return u.symbols.NewUnlisted(a, name)
}

// ClearMapCache empties the map lookup cache. Called by package gc at
// the start of every collection cycle; the cache does not keep values
// alive and must not be trusted across a cycle.
func (u *Universe) ClearMapCache() { u.mapCache.Clear() }

// MarkImmortalRoots marks every value the Universe itself keeps alive
// forever: the class registry (which transitively marks every class's
// name and parent), the interned-symbol table, the small-int and
// ASCII-string caches, and the three empty-container singletons.
// Package gc calls this once per collection cycle alongside the frame
// stack's roots.
func (u *Universe) MarkImmortalRoots(mark func(Value)) {
	u.classes.GCMark(mark)
	u.symbols.GCMark(mark)
	for _, v := range u.smallInts {
		mark(v)
	}
	for _, v := range u.asciiStrings {
		mark(v)
	}
	mark(u.emptyList)
	mark(u.emptyMap)
	mark(u.emptySymbolTable)
}

// immortalAllocator is the trivial Allocator used only during
// Universe bootstrap, for singletons that are never rooted on a frame
// and never swept: it stamps the header and returns the value
// unchanged, performing no bookkeeping whatsoever.
type immortalAllocator struct{}

func (immortalAllocator) Alloc(class *Class, v Value) Value {
	v.Hdr().Init(class)
	return v
}
