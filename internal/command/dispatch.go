package command

import (
	"strconv"
	"strings"
)

func dispatchSAdd(env *Env, argv []string) (Reply, error) {
	return SAdd(env, argv[1], argv[2:])
}

func dispatchSRem(env *Env, argv []string) (Reply, error) {
	return SRem(env, argv[1], argv[2:])
}

func dispatchSIsMember(env *Env, argv []string) (Reply, error) {
	if len(argv) != 3 {
		return Reply{}, ErrSyntax
	}
	return SIsMember(env, argv[1], argv[2])
}

func dispatchSCard(env *Env, argv []string) (Reply, error) {
	if len(argv) != 2 {
		return Reply{}, ErrSyntax
	}
	return SCard(env, argv[1])
}

func dispatchSMove(env *Env, argv []string) (Reply, error) {
	if len(argv) != 4 {
		return Reply{}, ErrSyntax
	}
	return SMove(env, argv[1], argv[2], argv[3])
}

func dispatchSPop(env *Env, argv []string) (Reply, error) {
	switch len(argv) {
	case 2:
		return SPop(env, argv[1])
	case 3:
		n, err := parseCount(argv[2])
		if err != nil {
			return Reply{}, err
		}
		return SPopCount(env, argv[1], n)
	default:
		return Reply{}, ErrSyntax
	}
}

func dispatchSRandMember(env *Env, argv []string) (Reply, error) {
	switch len(argv) {
	case 2:
		return SRandMember(env, argv[1])
	case 3:
		n, err := parseCount(argv[2])
		if err != nil {
			return Reply{}, err
		}
		return SRandMemberCount(env, argv[1], n)
	default:
		return Reply{}, ErrSyntax
	}
}

func dispatchSInter(env *Env, argv []string) (Reply, error) {
	return SInter(env, argv[1:])
}

func dispatchSInterStore(env *Env, argv []string) (Reply, error) {
	return SInterStore(env, argv[1], argv[2:])
}

func dispatchSUnion(env *Env, argv []string) (Reply, error) {
	return SUnion(env, argv[1:])
}

func dispatchSUnionStore(env *Env, argv []string) (Reply, error) {
	return SUnionStore(env, argv[1], argv[2:])
}

func dispatchSDiff(env *Env, argv []string) (Reply, error) {
	return SDiff(env, argv[1:])
}

func dispatchSDiffStore(env *Env, argv []string) (Reply, error) {
	return SDiffStore(env, argv[1], argv[2:])
}

// dispatchSScan parses key cursor [MATCH pattern] [COUNT count] and
// adapts the scancursor.Page it gets back into a Reply.
func dispatchSScan(env *Env, argv []string) (Reply, error) {
	cursor, err := strconv.ParseUint(argv[2], 10, 64)
	if err != nil {
		return Reply{}, ErrSyntax
	}

	match := ""
	count := 0
	rest := argv[3:]
	for i := 0; i < len(rest); i++ {
		if i+1 >= len(rest) {
			return Reply{}, ErrSyntax
		}
		switch strings.ToUpper(rest[i]) {
		case "MATCH":
			match = rest[i+1]
		case "COUNT":
			n, err := strconv.Atoi(rest[i+1])
			if err != nil {
				return Reply{}, ErrSyntax
			}
			count = n
		default:
			return Reply{}, ErrSyntax
		}
		i++
	}

	page, err := SScan(env, argv[1], cursor, match, count)
	if err != nil {
		return Reply{}, err
	}
	return ScanReply(page.NextCursor, page.Items), nil
}
