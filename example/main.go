//go:build eqgen

package main

import (
	"fmt"

	"github.com/sublee/eqgen"
)

// Money is equal by its amount and currency. The memo is not a part of the
// value.
type Money struct {
	Amount   int64
	Currency string
	Memo     string `eqgen:"-"`
}

func (m Money) Equal(other any) bool { return eqgen.Equal(m, other) }
func (m Money) Hash() uint64         { return eqgen.Hash(m) }
func (m Money) String() string       { return eqgen.String(m, eqgen.LowerNames()) }

// Account is identified by its ID only. Balance changes over time.
type Account struct {
	ID      string
	Owner   string
	Balance Money `eqgen:"var"`
}

func (a *Account) Equal(other any) bool {
	return eqgen.Equal(a, other, eqgen.Members(a.ID))
}

func (a *Account) Hash() uint64   { return eqgen.Hash(a) }
func (a *Account) String() string { return eqgen.String(a, eqgen.ConstructorVals()) }

// Set is a hash set of values which have Equal and Hash methods.
type Set[T interface {
	Equal(any) bool
	Hash() uint64
}] struct {
	buckets map[uint64][]T
	n       int
}

func (s *Set[T]) Add(v T) bool {
	if s.buckets == nil {
		s.buckets = make(map[uint64][]T)
	}
	h := v.Hash()
	for _, u := range s.buckets[h] {
		if u.Equal(v) {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], v)
	s.n++
	return true
}

func (s *Set[T]) Len() int { return s.n }

func main() {
	// Output: true
	a := Money{Amount: 100, Currency: "KRW", Memo: "lunch"}
	b := Money{Amount: 100, Currency: "KRW", Memo: "dinner"}
	fmt.Println(a.Equal(b))

	// Output: Money(amount=100, currency=KRW)
	fmt.Println(a)

	// Output: 2
	var prices Set[Money]
	prices.Add(a)
	prices.Add(b)
	prices.Add(Money{Amount: 100, Currency: "USD"})
	fmt.Println(prices.Len())

	// Output: true
	alice := &Account{ID: "a-1", Owner: "alice", Balance: a}
	later := &Account{ID: "a-1", Owner: "alice", Balance: Money{Amount: 0, Currency: "KRW"}}
	fmt.Println(alice.Equal(later))

	// Output: Account(ID=a-1, Owner=alice, Balance=Money(amount=100, currency=KRW))
	fmt.Println(alice)
}
