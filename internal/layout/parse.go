package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Upper bounds accepted by ParseCapacities.
const (
	MaxRows  = 1000
	MaxSeats = 100000
)

// ParseCapacities reads a layout description such as "11x7,3" or
// "7,7,7,3". Each comma separated token is either a single row capacity
// N or a repeat RxN meaning R rows of N seats. Whitespace around tokens is
// ignored. Values are returned as written; New rejects non-positive
// capacities. Layouts with more than MaxRows rows or MaxSeats seats are
// refused before any row is expanded.
func ParseCapacities(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}
	var caps []int
	seats := 0
	for _, tok := range strings.Split(s, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			return nil, fmt.Errorf("parse layout %q: empty row entry", s)
		}
		repeat := 1
		if i := strings.IndexByte(tok, 'x'); i >= 0 {
			r, err := strconv.Atoi(strings.TrimSpace(tok[:i]))
			if err != nil || r < 1 {
				return nil, fmt.Errorf("parse layout %q: bad repeat in %q", s, tok)
			}
			if r > MaxRows {
				return nil, fmt.Errorf("parse layout %q: repeat %d exceeds %d rows", s, r, MaxRows)
			}
			repeat = r
			tok = strings.TrimSpace(tok[i+1:])
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("parse layout %q: bad capacity %q: %w", s, tok, err)
		}
		if len(caps)+repeat > MaxRows {
			return nil, fmt.Errorf("parse layout %q: more than %d rows", s, MaxRows)
		}
		if n > 0 {
			if n > MaxSeats || seats+repeat*n > MaxSeats {
				return nil, fmt.Errorf("parse layout %q: more than %d seats", s, MaxSeats)
			}
			seats += repeat * n
		}
		for j := 0; j < repeat; j++ {
			caps = append(caps, n)
		}
	}
	return caps, nil
}
