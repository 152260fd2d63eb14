package value

// String is an immutable byte sequence with a precomputed FNV-1a hash.
// The heap's string table guarantees no two live String objects share
// identical contents, so Value equality for strings can be pointer
// identity.
type String struct {
	Header
	Chars string
	Hash  uint32
}

func (s *String) String() string { return s.Chars }

// HashString computes the FNV-1a hash used both for String.Hash and
// for string-table lookups prior to allocating a new String.
func HashString(s string) uint32 {
	var hash uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		hash ^= uint32(s[i])
		hash *= 16777619
	}
	return hash
}

// NewString constructs a String object header; callers (the heap
// allocator) are responsible for linking it into the all-objects list
// and, when interning, the string table.
func NewString(chars string) *String {
	return &String{Header: Header{Type: ObjTypeString}, Chars: chars, Hash: HashString(chars)}
}
