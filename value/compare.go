package value

import (
	"bytes"
	"math"
)

// pairKey identifies an unordered pair of handle identities, used to
// detect re-entry into a cycle during deep comparison.
type pairKey struct{ a, b uintptr }

func makePairKey(a, b uintptr) pairKey {
	if a > b {
		a, b = b, a
	}

	return pairKey{a: a, b: b}
}

// Equal reports whether a and b are deeply, structurally equal. It
// terminates on cyclic graphs: see Compare for the cycle-breaking
// algorithm.
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

// Compare defines a total order over Values: first by Kind's fixed
// ordinal (see the Kind doc comment), then by the variant's content.
//
// For referenceable variants the comparator maintains a visited-pair set
// keyed by the unordered pair of handle identities. On entry a pair is
// marked provisionally equal; re-entering the same pair (a cycle)
// returns that provisional marker instead of recursing again. If the
// content comparison of a previously unseen pair is incomparable (a
// Float containing NaN), Compare falls back to ordering by raw handle
// identity so the result stays total.
func Compare(a, b Value) int {
	return compareValues(a, b, make(map[pairKey]struct{}))
}

func compareValues(a, b Value, visited map[pairKey]struct{}) int {
	ka, kb := a.Kind(), b.Kind()
	if ka != kb {
		return cmpInt(int(ka), int(kb))
	}

	switch ka {
	case KindNil, KindFalse, KindTrue:
		return 0
	case KindInt:
		return cmpInt(int(a.(Int)), int(b.(Int))) //nolint:forcetypeassert
	case KindSymbol:
		return a.(Symbol).Compare(b.(Symbol)) //nolint:forcetypeassert
	default:
		ra, rb := a.(Referenceable), b.(Referenceable) //nolint:forcetypeassert
		ia, ib := ra.Identity(), rb.Identity()
		if ia == ib {
			return 0
		}

		key := makePairKey(ia, ib)
		if _, seen := visited[key]; seen {
			return 0
		}

		visited[key] = struct{}{}

		cmp, ok := compareContent(ka, ra, rb, visited)
		if !ok {
			return cmpUintptr(ia, ib)
		}

		return cmp
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUintptr(a, b uintptr) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

//nolint:cyclop
func compareContent(k Kind, a, b Referenceable, visited map[pairKey]struct{}) (int, bool) {
	switch k {
	case KindFloat:
		return compareFloat(a.(Float).Get(), b.(Float).Get()) //nolint:forcetypeassert
	case KindBigInt:
		return a.(BigInt).Get().Cmp(b.(BigInt).Get()), true //nolint:forcetypeassert
	case KindArray:
		return compareArray(a.(Array), b.(Array), visited), true //nolint:forcetypeassert
	case KindStr:
		return cmpStr(a.(Str).Get(), b.(Str).Get()), true //nolint:forcetypeassert
	case KindStrI:
		av, bv := a.(StrI), b.(StrI) //nolint:forcetypeassert
		if c := bytes.Compare(av.Bytes(), bv.Bytes()); c != 0 {
			return c, true
		}

		return compareFieldMaps(av.Fields(), bv.Fields(), visited), true
	case KindRegex:
		av, bv := a.(Regex), b.(Regex) //nolint:forcetypeassert
		if c := cmpStr(av.Source(), bv.Source()); c != 0 {
			return c, true
		}

		return cmpInt(int(av.Flags()), int(bv.Flags())), true
	case KindRegexI:
		av, bv := a.(RegexI), b.(RegexI) //nolint:forcetypeassert
		if c := bytes.Compare(av.Bytes(), bv.Bytes()); c != 0 {
			return c, true
		}

		if c := cmpInt(int(av.Flags()), int(bv.Flags())); c != 0 {
			return c, true
		}

		return compareFieldMaps(av.Fields(), bv.Fields(), visited), true
	case KindHash:
		return compareHash(a.(Hash), b.(Hash), visited), true //nolint:forcetypeassert
	case KindObject:
		av, bv := a.(Object), b.(Object) //nolint:forcetypeassert
		if c := av.Name().Compare(bv.Name()); c != 0 {
			return c, true
		}

		return compareFieldMaps(av.Fields(), bv.Fields(), visited), true
	case KindStruct:
		av, bv := a.(Struct), b.(Struct) //nolint:forcetypeassert
		if c := av.Name().Compare(bv.Name()); c != 0 {
			return c, true
		}

		return compareFieldMaps(av.Fields(), bv.Fields(), visited), true
	case KindClassRef:
		return cmpStr(a.(ClassRef).Name(), b.(ClassRef).Name()), true //nolint:forcetypeassert
	case KindModuleRef:
		return cmpStr(a.(ModuleRef).Name(), b.(ModuleRef).Name()), true //nolint:forcetypeassert
	case KindClassModuleRef:
		return cmpStr(a.(ClassModuleRef).Name(), b.(ClassModuleRef).Name()), true //nolint:forcetypeassert
	case KindData:
		av, bv := a.(Data), b.(Data) //nolint:forcetypeassert
		if c := av.Name().Compare(bv.Name()); c != 0 {
			return c, true
		}

		return compareValues(av.Payload(), bv.Payload(), visited), true
	case KindUserClass:
		av, bv := a.(UserClass), b.(UserClass) //nolint:forcetypeassert
		if c := av.Name().Compare(bv.Name()); c != 0 {
			return c, true
		}

		return compareValues(av.Payload(), bv.Payload(), visited), true
	case KindUserMarshal:
		av, bv := a.(UserMarshal), b.(UserMarshal) //nolint:forcetypeassert
		if c := av.Name().Compare(bv.Name()); c != 0 {
			return c, true
		}

		return compareValues(av.Payload(), bv.Payload(), visited), true
	case KindUserData:
		av, bv := a.(UserData), b.(UserData) //nolint:forcetypeassert
		if c := av.Name().Compare(bv.Name()); c != 0 {
			return c, true
		}

		return bytes.Compare(av.Bytes(), bv.Bytes()), true
	case KindExtended:
		av, bv := a.(Extended), b.(Extended) //nolint:forcetypeassert
		if c := av.Module().Compare(bv.Module()); c != 0 {
			return c, true
		}

		return compareValues(av.Object(), bv.Object(), visited), true
	default:
		return 0, true
	}
}

func cmpStr(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) (int, bool) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0, false
	}

	switch {
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	default:
		return 0, true
	}
}

func compareArray(a, b Array, visited map[pairKey]struct{}) int {
	ai, bi := a.Items(), b.Items()
	for i := 0; i < len(ai) && i < len(bi); i++ {
		if c := compareValues(ai[i], bi[i], visited); c != 0 {
			return c
		}
	}

	return cmpInt(len(ai), len(bi))
}

func compareFieldMaps(a, b *OrderedMap[Symbol, Value], visited map[pairKey]struct{}) int {
	ae, be := a.Entries(), b.Entries()
	for i := 0; i < len(ae) && i < len(be); i++ {
		if c := ae[i].Key.Compare(be[i].Key); c != 0 {
			return c
		}

		if c := compareValues(ae[i].Val, be[i].Val, visited); c != 0 {
			return c
		}
	}

	return cmpInt(len(ae), len(be))
}

func compareHash(a, b Hash, visited map[pairKey]struct{}) int {
	ae, be := a.Entries().Entries(), b.Entries().Entries()
	for i := 0; i < len(ae) && i < len(be); i++ {
		if c := compareValues(ae[i].Key, be[i].Key, visited); c != 0 {
			return c
		}

		if c := compareValues(ae[i].Val, be[i].Val, visited); c != 0 {
			return c
		}
	}

	if c := cmpInt(len(ae), len(be)); c != 0 {
		return c
	}

	ad, aHasDef := a.Default()
	bd, bHasDef := b.Default()

	switch {
	case aHasDef && bHasDef:
		return compareValues(ad, bd, visited)
	case aHasDef:
		return 1
	case bHasDef:
		return -1
	default:
		return 0
	}
}
