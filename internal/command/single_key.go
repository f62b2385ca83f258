package command

import (
	"github.com/vpol/redis/internal/repl"
	"github.com/vpol/redis/internal/setobj"
)

// SAdd implements SADD key v+ (spec.md §4.4).
func SAdd(env *Env, key string, members []string) (Reply, error) {
	if len(members) == 0 {
		return Reply{}, ErrSyntax
	}
	obj, ok, err := env.Keys.GetSet(key)
	if err != nil {
		return Reply{}, err
	}

	var added int64
	if !ok {
		obj = setobj.CreateFor(members[0], env.MaxIntsetEntries)
		added++
		members = members[1:]
	}
	for _, m := range members {
		inserted, promoted := obj.Add(m)
		if inserted {
			added++
		}
		if promoted {
			logPromotion(env.Log, key, obj.Encoding(), obj.Size())
		}
	}
	if !ok {
		env.Keys.PutSet(key, obj)
	}

	if added > 0 {
		env.Dirty.Add(added)
		env.Events.Publish("sadd", key)
	}
	return IntReply(added), nil
}

// SRem implements SREM key v+ (spec.md §4.4).
func SRem(env *Env, key string, members []string) (Reply, error) {
	if len(members) == 0 {
		return Reply{}, ErrSyntax
	}
	obj, ok, err := env.Keys.GetSet(key)
	if err != nil {
		return Reply{}, err
	}
	if !ok {
		return IntReply(0), nil
	}

	var removed int64
	for _, m := range members {
		if obj.Remove(m) {
			removed++
			if obj.Size() == 0 {
				env.Keys.Delete(key)
				env.Dirty.Add(removed)
				env.Events.Publish("srem", key)
				env.Events.Publish("del", key)
				return IntReply(removed), nil
			}
		}
	}
	if removed > 0 {
		env.Dirty.Add(removed)
		env.Events.Publish("srem", key)
	}
	return IntReply(removed), nil
}

// SIsMember implements SISMEMBER key v.
func SIsMember(env *Env, key, member string) (Reply, error) {
	obj, ok, err := env.Keys.GetSet(key)
	if err != nil {
		return Reply{}, err
	}
	if !ok || !obj.Contains(member) {
		return IntReply(0), nil
	}
	return IntReply(1), nil
}

// SCard implements SCARD key.
func SCard(env *Env, key string) (Reply, error) {
	obj, ok, err := env.Keys.GetSet(key)
	if err != nil {
		return Reply{}, err
	}
	if !ok {
		return IntReply(0), nil
	}
	return IntReply(int64(obj.Size())), nil
}

// SMove implements SMOVE src dst v (spec.md §4.4).
func SMove(env *Env, src, dst, member string) (Reply, error) {
	srcObj, ok, err := env.Keys.GetSet(src)
	if err != nil {
		return Reply{}, err
	}
	if !ok {
		return IntReply(0), nil
	}
	if src == dst {
		if srcObj.Contains(member) {
			return IntReply(1), nil
		}
		return IntReply(0), nil
	}
	if !srcObj.Contains(member) {
		return IntReply(0), nil
	}

	// Validate destination's type before mutating anything, so a
	// WRONGTYPE abort leaves no partial state.
	dstObj, dstOk, err := env.Keys.GetSet(dst)
	if err != nil {
		return Reply{}, err
	}

	srcObj.Remove(member)
	env.Events.Publish("srem", src)
	if srcObj.Size() == 0 {
		env.Keys.Delete(src)
		env.Events.Publish("del", src)
	}

	if !dstOk {
		dstObj = setobj.CreateFor(member, env.MaxIntsetEntries)
		env.Keys.PutSet(dst, dstObj)
		env.Events.Publish("sadd", dst)
	} else if inserted, promoted := dstObj.Add(member); inserted {
		if promoted {
			logPromotion(env.Log, dst, dstObj.Encoding(), dstObj.Size())
		}
		env.Events.Publish("sadd", dst)
	}

	env.Dirty.Add(1)
	return IntReply(1), nil
}

// SPop implements SPOP key (no count): spec.md §4.4. Replicates as a
// deterministic SREM.
func SPop(env *Env, key string) (Reply, error) {
	obj, ok, err := env.Keys.GetSet(key)
	if err != nil {
		return Reply{}, err
	}
	if !ok {
		return NilBulkReply(), nil
	}

	e := obj.Random(env.rand())
	s := e.String()
	obj.Remove(s)

	env.Dirty.Add(1)
	env.Events.Publish("spop", key)
	if obj.Size() == 0 {
		env.Keys.Delete(key)
		env.Events.Publish("del", key)
	}
	if env.Repl != nil {
		env.Repl.RewriteCurrent([]string{"SREM", key, s})
	}
	return BulkReply(s), nil
}

// SPopCount implements SPOP key count: spec.md §4.4, choosing between
// the sample-and-remove and rebuild-remainder strategies by ratio.
func SPopCount(env *Env, key string, n int64) (Reply, error) {
	if n < 0 {
		return Reply{}, ErrOutOfRange
	}
	obj, ok, err := env.Keys.GetSet(key)
	if err != nil {
		return Reply{}, err
	}
	if !ok || n == 0 {
		if env.Repl != nil {
			env.Repl.SuppressCurrent()
		}
		return ArrayReply(nil), nil
	}

	size := int64(obj.Size())
	if n >= size {
		popped := elementsToStrings(obj.All())
		env.Keys.Delete(key)
		env.Dirty.Add(size)
		env.Events.Publish("spop", key)
		env.Events.Publish("del", key)
		if env.Repl != nil {
			env.Repl.RewriteCurrent([]string{"DEL", key})
		}
		return ArrayReply(popped), nil
	}

	remaining := size - n
	var popped []string
	if remaining*5 > n {
		popped = samplePopSmallSide(env, obj, key, n)
	} else {
		popped = rebuildPopLargeSide(env, obj, key, remaining)
	}

	if env.Repl != nil {
		env.Repl.SuppressCurrent()
	}
	env.Dirty.Add(n)
	env.Events.Publish("spop", key)
	return ArrayReply(popped), nil
}

// samplePopSmallSide implements the sample-and-remove strategy: the
// returned set is the small side, so repeatedly drawing and removing
// one element at a time bounds work at O(n).
func samplePopSmallSide(env *Env, obj *setobj.Object, key string, n int64) []string {
	popped := make([]string, 0, n)
	for i := int64(0); i < n; i++ {
		s := obj.Random(env.rand()).String()
		obj.Remove(s)
		popped = append(popped, s)
		if env.Repl != nil {
			env.Repl.Propagate([]string{"SREM", key, s}, repl.ModeAll)
		}
	}
	return popped
}

// rebuildPopLargeSide implements the rebuild-remainder strategy: the
// returned set is the large side, so it draws the small remainder
// directly and returns/propagates the complement, swapping the new
// remainder into the keyspace atomically.
func rebuildPopLargeSide(env *Env, obj *setobj.Object, key string, remaining int64) []string {
	future := setobj.NewEmpty(env.MaxIntsetEntries)
	kept := make(map[string]struct{}, remaining)
	for int64(len(kept)) < remaining {
		s := obj.Random(env.rand()).String()
		if _, dup := kept[s]; dup {
			continue
		}
		kept[s] = struct{}{}
		future.Add(s)
	}

	popped := make([]string, 0, obj.Size()-len(kept))
	for _, e := range obj.All() {
		s := e.String()
		if _, keep := kept[s]; keep {
			continue
		}
		popped = append(popped, s)
		if env.Repl != nil {
			env.Repl.Propagate([]string{"SREM", key, s}, repl.ModeAll)
		}
	}
	env.Keys.PutSet(key, future)
	return popped
}

// SRandMember implements SRANDMEMBER key (no count): returns a random
// element without mutation.
func SRandMember(env *Env, key string) (Reply, error) {
	obj, ok, err := env.Keys.GetSet(key)
	if err != nil {
		return Reply{}, err
	}
	if !ok {
		return NilBulkReply(), nil
	}
	return BulkReply(obj.Random(env.rand()).String()), nil
}

// SRandMemberCount implements SRANDMEMBER key count: spec.md §4.4.
func SRandMemberCount(env *Env, key string, l int64) (Reply, error) {
	obj, ok, err := env.Keys.GetSet(key)
	if err != nil {
		return Reply{}, err
	}
	if !ok || l == 0 {
		return ArrayReply(nil), nil
	}
	if l < 0 {
		return ArrayReply(drawWithRepetition(env, obj, -l)), nil
	}

	size := int64(obj.Size())
	if l >= size {
		return ArrayReply(elementsToStrings(obj.All())), nil
	}
	return ArrayReply(sampleUnique(env, obj, l)), nil
}

func drawWithRepetition(env *Env, obj *setobj.Object, n int64) []string {
	out := make([]string, 0, n)
	for i := int64(0); i < n; i++ {
		out = append(out, obj.Random(env.rand()).String())
	}
	return out
}

// sampleUnique picks l < size distinct elements, choosing between
// build-and-subtract (for a large requested fraction) and
// sample-until-unique (otherwise), per spec.md §4.4. Never mutates
// obj.
func sampleUnique(env *Env, obj *setobj.Object, l int64) []string {
	size := int64(obj.Size())
	if l*3 > size {
		members := elementsToStrings(obj.All())
		rng := env.rand()
		for int64(len(members)) > l {
			idx := rng.IntN(len(members))
			members[idx] = members[len(members)-1]
			members = members[:len(members)-1]
		}
		return members
	}

	seen := make(map[string]struct{}, l)
	out := make([]string, 0, l)
	for int64(len(out)) < l {
		s := obj.Random(env.rand()).String()
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// SRandMemberStore is the destructive-output variant of
// SRANDMEMBER: it writes the chosen elements to dst instead of
// replying with them, replacing whatever dst held. count == nil means
// "without count" (a single element); otherwise *count is L as in
// SRandMemberCount.
func SRandMemberStore(env *Env, src, dst string, count *int64) (Reply, error) {
	obj, ok, err := env.Keys.GetSet(src)
	if err != nil {
		return Reply{}, err
	}

	var chosen []string
	switch {
	case !ok:
		chosen = nil
	case count == nil:
		chosen = []string{obj.Random(env.rand()).String()}
	case *count == 0:
		chosen = nil
	case *count < 0:
		chosen = drawWithRepetition(env, obj, -*count)
	default:
		size := int64(obj.Size())
		if *count >= size {
			chosen = elementsToStrings(obj.All())
		} else {
			chosen = sampleUnique(env, obj, *count)
		}
	}

	existed := env.Keys.Exists(dst)
	if existed {
		env.Keys.Delete(dst)
	}
	env.Dirty.Add(1)
	if len(chosen) == 0 {
		if existed {
			env.Events.Publish("del", dst)
		}
		return IntReply(0), nil
	}

	out := setobj.NewEmpty(env.MaxIntsetEntries)
	for _, c := range chosen {
		out.Add(c)
	}
	env.Keys.PutSet(dst, out)
	env.Events.Publish("srandmemberstore", dst)
	return IntReply(int64(out.Size())), nil
}
