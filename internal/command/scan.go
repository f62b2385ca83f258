package command

import "github.com/vpol/redis/internal/scancursor"

// SScan implements SSCAN key cursor [MATCH pattern] [COUNT count]
// (spec.md §6). The underlying cursor primitive is out of scope for
// this subsystem; SScan just snapshots the set's current elements and
// pages through them with scancursor.
func SScan(env *Env, key string, cursor uint64, match string, count int) (scancursor.Page, error) {
	obj, ok, err := env.Keys.GetSet(key)
	if err != nil {
		return scancursor.Page{}, err
	}
	if !ok {
		return scancursor.Page{}, nil
	}
	return scancursor.Scan(elementsToStrings(obj.All()), cursor, match, count), nil
}
