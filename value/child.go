package value

// Child looks up a position within v addressed by key, the child-lookup
// helper from the Value Model:
//
//   - Array with an Int key: index lookup.
//   - Hash: key lookup via the Hash's own ordered map. Scalar keys match
//     by content; referenceable keys are bucketed by handle identity
//     (HashValue), so they match only the same handle, not a deeply equal
//     copy.
//   - Object/Struct: Symbol key lookup against the field map.
//   - Data/UserClass/UserMarshal/Extended: recurse into the wrapped
//     payload, ignoring key.
//   - Anything else: no child.
func Child(v Value, key Value) (Value, bool) {
	switch x := v.(type) {
	case Array:
		idx, ok := key.(Int)
		if !ok {
			return nil, false
		}

		items := x.Items()
		if int(idx) < 0 || int(idx) >= len(items) {
			return nil, false
		}

		return items[idx], true
	case Hash:
		return x.Entries().Get(key)
	case Object:
		sym, ok := key.(Symbol)
		if !ok {
			return nil, false
		}

		return x.Fields().Get(sym)
	case Struct:
		sym, ok := key.(Symbol)
		if !ok {
			return nil, false
		}

		return x.Fields().Get(sym)
	case Data:
		return Child(x.Payload(), key)
	case UserClass:
		return Child(x.Payload(), key)
	case UserMarshal:
		return Child(x.Payload(), key)
	case Extended:
		return Child(x.Object(), key)
	default:
		return nil, false
	}
}
