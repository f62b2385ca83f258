// Package scancursor implements a thin, index-based cursor over a
// stable snapshot of a set's elements. The keyspace-wide cursor
// primitive SSCAN would normally delegate to (restartable scan over a
// hash table surviving rehashes) is explicitly out of scope for this
// subsystem (spec.md §1); this is enough to honor the SSCAN command
// surface without building that primitive.
package scancursor

import "path"

// Page is one SSCAN response: the cursor to pass next (0 means the
// scan is complete) and the matched items from this page.
type Page struct {
	NextCursor uint64
	Items      []string
}

// Scan pages through elements starting at cursor, filtering by an
// optional glob (match == "" disables filtering) and advancing at most
// count positions. count <= 0 defaults to 10, mirroring the hint-only
// semantics of the real COUNT option.
func Scan(elements []string, cursor uint64, match string, count int) Page {
	if count <= 0 {
		count = 10
	}
	n := uint64(len(elements))
	if cursor >= n {
		return Page{}
	}

	end := cursor + uint64(count)
	if end > n {
		end = n
	}
	next := end
	if end >= n {
		next = 0
	}

	items := make([]string, 0, end-cursor)
	for _, e := range elements[cursor:end] {
		if match != "" {
			ok, err := path.Match(match, e)
			if err != nil || !ok {
				continue
			}
		}
		items = append(items, e)
	}
	return Page{NextCursor: next, Items: items}
}
