package dedup

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// UniqueBy keeps the first item seen for every key, preserving order.
func UniqueBy[T any](items []T, key func(T) string) []T {
	seen := make(map[string]bool, len(items))
	unique := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, item)
	}
	return unique
}

// LinkSet is a membership set over record links.
type LinkSet struct {
	set mapset.Set[string]
}

func NewLinkSet(links ...string) *LinkSet {
	return &LinkSet{set: mapset.NewThreadUnsafeSet(links...)}
}

// LinksOf builds a LinkSet from the keys of previously persisted records.
func LinksOf[T interface{ Key() string }](records []T) *LinkSet {
	ls := NewLinkSet()
	for _, r := range records {
		ls.Add(r.Key())
	}
	return ls
}

func (ls *LinkSet) Has(link string) bool {
	return ls.set.Contains(link)
}

func (ls *LinkSet) Add(link string) {
	ls.set.Add(link)
}

func (ls *LinkSet) Len() int {
	return ls.set.Cardinality()
}
