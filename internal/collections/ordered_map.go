// Package collections holds small container types shared across the module.
package collections

import (
	"container/list"
)

type keyVal struct {
	key uint64
	val interface{}
}

// OrderedMap is a map keyed by uint64 hashes that tracks the insertion
// ordering of its elements, so that callers can walk entries from oldest to
// newest. It is not thread-safe.
type OrderedMap struct {
	items map[uint64]*list.Element
	order *list.List
}

// NewOrderedMap allocates an ordered map with the given initial capacity.
// The capacity will grow as needed.
func NewOrderedMap(cap int) OrderedMap {
	return OrderedMap{
		items: make(map[uint64]*list.Element, cap),
		order: list.New(),
	}
}

// Len returns the number of elements in the map
func (m OrderedMap) Len() int {
	return len(m.items)
}

// Get returns the value for a given key in the map and an existence flag.
func (m OrderedMap) Get(key uint64) (interface{}, bool) {
	elem := m.items[key]
	if elem == nil {
		return nil, false
	}
	return elem.Value.(keyVal).val, true
}

// Set sets the value for a given key in the map and returns true iff the key did not already exist.
// If the key already exists its value is updated, but its recency is not.
func (m OrderedMap) Set(key uint64, val interface{}) bool {
	elem := m.items[key]
	if elem != nil {
		elem.Value = keyVal{key, val}
		return false
	}

	elem = m.order.PushFront(keyVal{key, val})
	m.items[key] = elem
	return true
}

// Delete deletes the given key from the map, returning the corresponding value and an existence flag.
func (m OrderedMap) Delete(key uint64) (interface{}, bool) {
	elem := m.items[key]
	if elem == nil {
		return nil, false
	}
	delete(m.items, key)
	return m.order.Remove(elem).(keyVal).val, true
}

// RangeInc iterates over the map in increasing order of insertion recency.
func (m OrderedMap) RangeInc(cb func(k uint64, v interface{}) bool) {
	elem := m.order.Back()
	for elem != nil {
		kv := elem.Value.(keyVal)
		elem = elem.Prev() // this needs to happen before cb(...), since cb(...) might delete `elem`
		if !cb(kv.key, kv.val) {
			break
		}
	}
}

// RangeDec iterates over the map in decreasing order of insertion recency.
func (m OrderedMap) RangeDec(cb func(k uint64, v interface{}) bool) {
	elem := m.order.Front()
	for elem != nil {
		kv := elem.Value.(keyVal)
		elem = elem.Next() // this needs to happen before cb(...), since cb(...) might delete `elem`
		if !cb(kv.key, kv.val) {
			break
		}
	}
}
