package entities

// Optional carries a patch value that may or may not have been supplied.
// The zero value means "leave the stored field alone". For nullable fields
// use Optional[null.String] (or null.Time): Some(null.String{}) clears the
// field, Some(null.StringFrom(v)) sets it.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an unset Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value was supplied.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Apply writes the value into dst when it was supplied and reports whether it did.
func (o Optional[T]) Apply(dst *T) bool {
	if !o.set {
		return false
	}
	*dst = o.value
	return true
}
