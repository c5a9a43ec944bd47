// ABOUTME: Generic ordered in-memory collection keyed by identifier
// ABOUTME: Insertion order is display order; every read returns a copy
package crm

// Keyed is implemented by every entity stored in a Repository.
type Keyed[K comparable, T any] interface {
	Key() K
	WithKey(id K) T
}

// Repository holds one entity collection. It is not safe for concurrent use;
// State serializes access.
type Repository[K comparable, T Keyed[K, T]] struct {
	items []T
	ids   IDSource[K]
}

func NewRepository[K comparable, T Keyed[K, T]](ids IDSource[K]) *Repository[K, T] {
	return &Repository[K, T]{ids: ids}
}

// Reset replaces the contents, e.g. after loading a snapshot.
func (r *Repository[K, T]) Reset(items []T) {
	r.items = append([]T(nil), items...)
	for _, item := range r.items {
		r.ids.Observe(item.Key())
	}
}

func (r *Repository[K, T]) clone() *Repository[K, T] {
	return &Repository[K, T]{
		items: append([]T(nil), r.items...),
		ids:   r.ids,
	}
}

func (r *Repository[K, T]) index(id K) int {
	for i, item := range r.items {
		if item.Key() == id {
			return i
		}
	}
	return -1
}

// Add appends item and returns the stored record. A zero or already-used id
// is replaced with a fresh one.
func (r *Repository[K, T]) Add(item T) T {
	var zero K
	if id := item.Key(); id == zero || r.index(id) >= 0 {
		item = item.WithKey(r.ids.Next())
	} else {
		r.ids.Observe(id)
	}
	r.items = append(r.items, item)
	return item
}

// NextID returns a fresh id from the repository's source.
func (r *Repository[K, T]) NextID() K {
	return r.ids.Next()
}

// Update replaces the record with the same id. It reports false and changes
// nothing when no record matches.
func (r *Repository[K, T]) Update(item T) bool {
	i := r.index(item.Key())
	if i < 0 {
		return false
	}
	r.items[i] = item
	return true
}

// Remove deletes the record with id. It reports false when none matches.
func (r *Repository[K, T]) Remove(id K) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return true
}

// RemoveWhere deletes every record matching pred and returns them.
func (r *Repository[K, T]) RemoveWhere(pred func(T) bool) []T {
	var removed []T
	kept := r.items[:0]
	for _, item := range r.items {
		if pred(item) {
			removed = append(removed, item)
			continue
		}
		kept = append(kept, item)
	}
	r.items = kept
	return removed
}

func (r *Repository[K, T]) FindByID(id K) (T, bool) {
	if i := r.index(id); i >= 0 {
		return r.items[i], true
	}
	var zero T
	return zero, false
}

func (r *Repository[K, T]) Exists(id K) bool {
	return r.index(id) >= 0
}

// FindWhere returns the records matching pred, in order.
func (r *Repository[K, T]) FindWhere(pred func(T) bool) []T {
	result := make([]T, 0)
	for _, item := range r.items {
		if pred(item) {
			result = append(result, item)
		}
	}
	return result
}

// All returns every record, in order.
func (r *Repository[K, T]) All() []T {
	return append(make([]T, 0, len(r.items)), r.items...)
}

func (r *Repository[K, T]) Len() int {
	return len(r.items)
}
