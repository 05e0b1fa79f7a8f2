package registry

import "github.com/avolkov/loreweave/internal/model"

// defaultConcepts is the built-in concept table. Constants never change once
// assigned: every existing seed document depends on them.
var defaultConcepts = []model.Concept{
	{Name: "zworblax", Constant: 1},
	{Name: "qintrosk", Constant: 2},
	{Name: "vendrikal", Constant: 3},
	{Name: "plorvutta", Constant: 5},
	{Name: "skellamir", Constant: 7},
	{Name: "drunfexia", Constant: 11},
	{Name: "wopplezan", Constant: 13},
	{Name: "murtalvos", Constant: 17},
	{Name: "quelphine", Constant: 19},
	{Name: "xandrovik", Constant: 23},
	{Name: "blethorny", Constant: 29},
	{Name: "frindlecor", Constant: 31},
}

// defaultAliases maps wrapper names to their parent concepts. Aliases let the
// narrative vary its framing (wrapper functions, reflection variants) without
// ever duplicating a constant.
var defaultAliases = []model.Alias{
	{Name: "kridune", Concept: "zworblax"},
	{Name: "veltrask", Concept: "qintrosk"},
	{Name: "ombrifex", Concept: "vendrikal"},
	{Name: "snorvekka", Concept: "plorvutta"},
	{Name: "gravthune", Concept: "skellamir"},
	{Name: "yelbindra", Concept: "drunfexia"},
	{Name: "crullfane", Concept: "murtalvos"},
	{Name: "thazmoril", Concept: "xandrovik"},
}

// Default returns the built-in registry. The table is validated on every
// call; a broken built-in table is a programming error and panics.
func Default() *Registry {
	r, err := New(defaultConcepts, defaultAliases)
	if err != nil {
		panic(err)
	}
	return r
}
