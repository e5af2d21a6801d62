package rewriter

import (
	"sort"
	"strconv"
	"strings"
)

// ParseIDList parses selection input like "424-426,430" into a sorted
// set of ids. Tokens are comma-separated, each a non-negative integer
// or an inclusive start-end range; whitespace is ignored and
// duplicates collapse. Malformed tokens are returned separately and do
// not block the valid ones.
func ParseIDList(input string) (ids []int, invalid []string) {
	cleaned := strings.ReplaceAll(input, " ", "")
	if cleaned == "" {
		return nil, nil
	}

	seen := make(map[int]bool)
	for _, part := range strings.Split(cleaned, ",") {
		if before, after, found := strings.Cut(part, "-"); found {
			start, err1 := strconv.Atoi(before)
			end, err2 := strconv.Atoi(after)
			if err1 != nil || err2 != nil || start < 0 || end < 0 {
				invalid = append(invalid, part)
				continue
			}
			for id := start; id <= end; id++ {
				seen[id] = true
			}
			continue
		}

		id, err := strconv.Atoi(part)
		if err != nil || id < 0 {
			invalid = append(invalid, part)
			continue
		}
		seen[id] = true
	}

	ids = make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, invalid
}
