package domain

import (
	"sort"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
)

// PageSet is the set of receipt numbers still available in a booklet.
type PageSet map[int]struct{}

// NewPageSet returns the set [start, end].
func NewPageSet(start, end int) PageSet {
	ps := make(PageSet, end-start+1)
	for n := start; n <= end; n++ {
		ps[n] = struct{}{}
	}
	return ps
}

// PageSetOf builds a set from a slice.
func PageSetOf(numbers []int) PageSet {
	ps := make(PageSet, len(numbers))
	for _, n := range numbers {
		ps[n] = struct{}{}
	}
	return ps
}

// Contains reports membership.
func (ps PageSet) Contains(n int) bool {
	_, ok := ps[n]
	return ok
}

// Sorted returns the numbers in ascending order.
func (ps PageSet) Sorted() []int {
	out := make([]int, 0, len(ps))
	for n := range ps {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Booklet is a numbered range of receipt slips.
type Booklet struct {
	BookletID      string  `json:"bookletID"`
	AccountID      string  `json:"accountID"`
	StartNumber    int     `json:"startNumber"`
	EndNumber      int     `json:"endNumber"`
	AvailablePages PageSet `json:"-"`
	IsClosed       bool    `json:"isClosed"`
	AuditFields
}

// InRange reports whether n belongs to the booklet's numbering range.
func (b Booklet) InRange(n int) bool {
	return n >= b.StartNumber && n <= b.EndNumber
}

// Overlaps reports whether two booklets of the same account share numbers.
func (b Booklet) Overlaps(o Booklet) bool {
	return b.AccountID == o.AccountID && b.StartNumber <= o.EndNumber && o.StartNumber <= b.EndNumber
}

// Reserve takes the requested number, or the smallest available one, out of the set.
// used holds numbers already claimed by transactions regardless of the set's content.
func (b *Booklet) Reserve(requested *int, used map[int]bool) (int, error) {
	if requested != nil {
		n := *requested
		if !b.InRange(n) {
			return 0, apperrors.NewValidationError("receipt number %d is outside booklet range %d-%d", n, b.StartNumber, b.EndNumber)
		}
		if !b.AvailablePages.Contains(n) || used[n] {
			return 0, apperrors.ErrReceiptNumberUsed
		}
		b.take(n)
		return n, nil
	}
	if b.IsClosed {
		return 0, apperrors.ErrBookletExhausted
	}
	for _, n := range b.AvailablePages.Sorted() {
		if used[n] {
			continue
		}
		b.take(n)
		return n, nil
	}
	return 0, apperrors.ErrBookletExhausted
}

func (b *Booklet) take(n int) {
	delete(b.AvailablePages, n)
	if len(b.AvailablePages) == 0 {
		b.IsClosed = true
	}
}

// Release returns n to the set. It is a no-op when another transaction still claims n
// or when n is not part of the booklet.
func (b *Booklet) Release(n int, stillClaimed bool) bool {
	if stillClaimed || !b.InRange(n) || b.AvailablePages.Contains(n) {
		return false
	}
	if b.AvailablePages == nil {
		b.AvailablePages = PageSet{}
	}
	b.AvailablePages[n] = struct{}{}
	b.IsClosed = false
	return true
}
