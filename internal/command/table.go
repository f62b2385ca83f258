package command

import "strings"

// HandlerFunc is a dispatch-table entry: given the full argv
// (argv[0] is the command name) it performs the command and returns
// its Reply.
type HandlerFunc func(env *Env, argv []string) (Reply, error)

// Command describes one entry in the command surface (spec.md §6),
// grounded on the EchoVault-SugarDB Commands() table shape (name,
// description, handler) minus the dispatcher-specific fields
// (categories, sync flag, key-extraction func) that belong to the
// out-of-scope client-connection dispatcher.
type Command struct {
	Name        string
	MinArgs     int // including the command name itself
	Description string
	Handler     HandlerFunc
}

// Table is the full command surface.
var Table = []Command{
	{Name: "SADD", MinArgs: 3, Description: "Add one or more members to a set.", Handler: dispatchSAdd},
	{Name: "SREM", MinArgs: 3, Description: "Remove one or more members from a set.", Handler: dispatchSRem},
	{Name: "SISMEMBER", MinArgs: 3, Description: "Test membership of one value.", Handler: dispatchSIsMember},
	{Name: "SCARD", MinArgs: 2, Description: "Return set cardinality.", Handler: dispatchSCard},
	{Name: "SMOVE", MinArgs: 4, Description: "Move a member between two sets.", Handler: dispatchSMove},
	{Name: "SPOP", MinArgs: 2, Description: "Remove and return one or more random members.", Handler: dispatchSPop},
	{Name: "SRANDMEMBER", MinArgs: 2, Description: "Return one or more random members without removing them.", Handler: dispatchSRandMember},
	{Name: "SINTER", MinArgs: 2, Description: "Intersect multiple sets.", Handler: dispatchSInter},
	{Name: "SINTERSTORE", MinArgs: 3, Description: "Intersect multiple sets and store the result.", Handler: dispatchSInterStore},
	{Name: "SUNION", MinArgs: 2, Description: "Union multiple sets.", Handler: dispatchSUnion},
	{Name: "SUNIONSTORE", MinArgs: 3, Description: "Union multiple sets and store the result.", Handler: dispatchSUnionStore},
	{Name: "SDIFF", MinArgs: 2, Description: "Diff multiple sets.", Handler: dispatchSDiff},
	{Name: "SDIFFSTORE", MinArgs: 3, Description: "Diff multiple sets and store the result.", Handler: dispatchSDiffStore},
	{Name: "SSCAN", MinArgs: 3, Description: "Incrementally iterate a set's members.", Handler: dispatchSScan},
}

var byName map[string]Command

func init() {
	byName = make(map[string]Command, len(Table))
	for _, c := range Table {
		byName[c.Name] = c
	}
}

// Lookup finds a Command by name, case-insensitively.
func Lookup(name string) (Command, bool) {
	c, ok := byName[strings.ToUpper(name)]
	return c, ok
}

// Dispatch looks up argv[0] in Table and invokes its handler, or
// returns ErrSyntax for an unknown command or one with too few
// arguments.
func Dispatch(env *Env, argv []string) (Reply, error) {
	if len(argv) == 0 {
		return Reply{}, ErrSyntax
	}
	c, ok := Lookup(argv[0])
	if !ok {
		return Reply{}, ErrSyntax
	}
	if len(argv) < c.MinArgs {
		return Reply{}, ErrSyntax
	}
	return c.Handler(env, argv)
}
