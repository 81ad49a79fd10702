// Package value implements the tagged-variant object graph that the
// reader and writer packages decode to and encode from.
//
// # Core Features
//
//   - A Value interface with one concrete type per wire variant
//   - Scalars (Nil, True, False, Int, Symbol) held inline, by value
//   - Referenceable variants (Array, Hash, Object, ...) held through
//     internal/handle.Handle, so multiple positions in a graph can alias
//     the same instance the way the source format's back-references do
//   - An insertion-ordered OrderedMap backing Object/Struct fields and
//     Hash entries
//   - Cycle-safe deep equality (Equal), ordering (Compare), and hashing
//     (HashValue)
//
// # Basic Usage
//
//	arr := value.NewArray([]value.Value{value.Int(1), value.True{}})
//	other := value.NewArray([]value.Value{value.Int(1), value.True{}})
//	value.Equal(arr, other) // true: structurally identical, distinct handles
package value
