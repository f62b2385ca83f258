package command

import (
	"sort"

	"github.com/vpol/redis/internal/setobj"
)

// source pairs a key with the Object found there, or nil if the key
// is missing. Missing sources are treated per-operation per spec.md
// §4.5: empty for UNION/DIFFERENCE, short-circuit-to-empty for
// INTERSECT.
type source struct {
	key string
	obj *setobj.Object
}

func (s source) size() int {
	if s.obj == nil {
		return 0
	}
	return s.obj.Size()
}

func collectSources(env *Env, keys []string) ([]source, error) {
	out := make([]source, 0, len(keys))
	for _, k := range keys {
		obj, ok, err := env.Keys.GetSet(k)
		if err != nil {
			return nil, err
		}
		if !ok {
			obj = nil
		}
		out = append(out, source{key: k, obj: obj})
	}
	return out, nil
}

// intersectObj implements INTERSECT (spec.md §4.5): sort sources by
// ascending cardinality, probe the smallest against the rest,
// short-circuiting to empty on any missing or empty source.
func intersectObj(env *Env, keys []string) (*setobj.Object, error) {
	srcs, err := collectSources(env, keys)
	if err != nil {
		return nil, err
	}
	result := setobj.NewEmpty(env.MaxIntsetEntries)
	for _, s := range srcs {
		if s.size() == 0 {
			return result, nil
		}
	}

	sort.SliceStable(srcs, func(i, j int) bool { return srcs[i].size() < srcs[j].size() })
	smallest := srcs[0].obj
	rest := srcs[1:]

	for _, e := range smallest.All() {
		str := e.String()
		inAll := true
		for _, o := range rest {
			// Object.Contains already applies the spec's probe fast
			// path: integer binary-search when the other side is
			// IntSet and str is canonical, generic byte-string
			// membership otherwise.
			if !o.obj.Contains(str) {
				inAll = false
				break
			}
		}
		if inAll {
			result.Add(str)
		}
	}
	return result, nil
}

// unionObj implements UNION (spec.md §4.5): insert every element of
// every source into a fresh output.
func unionObj(env *Env, keys []string) (*setobj.Object, error) {
	srcs, err := collectSources(env, keys)
	if err != nil {
		return nil, err
	}
	result := setobj.NewEmpty(env.MaxIntsetEntries)
	for _, s := range srcs {
		if s.obj == nil {
			continue
		}
		for _, e := range s.obj.All() {
			result.Add(e.String())
		}
	}
	return result, nil
}

// differenceObj implements DIFFERENCE (spec.md §4.5): sources[0] \
// union(sources[1:]), choosing between the probe algorithm (A) and the
// subtract algorithm (B) by estimated work.
func differenceObj(env *Env, keys []string) (*setobj.Object, error) {
	srcs, err := collectSources(env, keys)
	if err != nil {
		return nil, err
	}
	result := setobj.NewEmpty(env.MaxIntsetEntries)
	if len(srcs) == 0 || srcs[0].size() == 0 {
		return result, nil
	}

	base := srcs[0].obj
	others := srcs[1:]

	n0 := int64(base.Size())
	n := int64(len(srcs))
	var sumAll int64 = n0
	for _, o := range others {
		sumAll += int64(o.size())
	}
	workA := (n0 * n) / 2
	useA := workA <= sumAll

	if useA {
		if len(others) > 1 {
			sort.SliceStable(others, func(i, j int) bool { return others[i].size() > others[j].size() })
		}
		for _, e := range base.All() {
			str := e.String()
			present := false
			for _, o := range others {
				if o.obj != nil && o.obj.Contains(str) {
					present = true
					break
				}
			}
			if !present {
				result.Add(str)
			}
		}
		return result, nil
	}

	for _, e := range base.All() {
		result.Add(e.String())
	}
	for _, o := range others {
		if result.Size() == 0 {
			break
		}
		if o.obj == nil {
			continue
		}
		for _, e := range o.obj.All() {
			result.Remove(e.String())
			if result.Size() == 0 {
				break
			}
		}
	}
	return result, nil
}

func replyFromObj(obj *setobj.Object) Reply {
	if obj == nil {
		return ArrayReply(nil)
	}
	return ArrayReply(elementsToStrings(obj.All()))
}

// storeResult installs obj at dest (spec.md §4.5 "Storage of
// results"): any prior value is removed first; a non-empty result is
// installed and emits event; an empty result only emits del if a
// prior value existed. Dirty always increments.
func storeResult(env *Env, dest string, obj *setobj.Object, event string) Reply {
	existed := env.Keys.Exists(dest)
	if existed {
		env.Keys.Delete(dest)
	}
	env.Dirty.Add(1)
	if obj == nil || obj.Size() == 0 {
		if existed {
			env.Events.Publish("del", dest)
		}
		return IntReply(0)
	}
	env.Keys.PutSet(dest, obj)
	env.Events.Publish(event, dest)
	return IntReply(int64(obj.Size()))
}

// SInter implements SINTER k+.
func SInter(env *Env, keys []string) (Reply, error) {
	obj, err := intersectObj(env, keys)
	if err != nil {
		return Reply{}, err
	}
	return replyFromObj(obj), nil
}

// SInterStore implements SINTERSTORE dst k+.
func SInterStore(env *Env, dest string, keys []string) (Reply, error) {
	obj, err := intersectObj(env, keys)
	if err != nil {
		return Reply{}, err
	}
	return storeResult(env, dest, obj, "sinterstore"), nil
}

// SUnion implements SUNION k+.
func SUnion(env *Env, keys []string) (Reply, error) {
	obj, err := unionObj(env, keys)
	if err != nil {
		return Reply{}, err
	}
	return replyFromObj(obj), nil
}

// SUnionStore implements SUNIONSTORE dst k+.
func SUnionStore(env *Env, dest string, keys []string) (Reply, error) {
	obj, err := unionObj(env, keys)
	if err != nil {
		return Reply{}, err
	}
	return storeResult(env, dest, obj, "sunionstore"), nil
}

// SDiff implements SDIFF k+.
func SDiff(env *Env, keys []string) (Reply, error) {
	obj, err := differenceObj(env, keys)
	if err != nil {
		return Reply{}, err
	}
	return replyFromObj(obj), nil
}

// SDiffStore implements SDIFFSTORE dst k+.
func SDiffStore(env *Env, dest string, keys []string) (Reply, error) {
	obj, err := differenceObj(env, keys)
	if err != nil {
		return Reply{}, err
	}
	return storeResult(env, dest, obj, "sdiffstore"), nil
}
