package aggregator

// ChannelReferencer is implemented by items owned by a channel
type ChannelReferencer interface {
	ChannelRef() string
}

// ReferenceSet is a list of distinct foreign keys in first-seen order
type ReferenceSet []string

// Contains reports whether key is in the set
func (s ReferenceSet) Contains(key string) bool {
	for _, k := range s {
		if k == key {
			return true
		}
	}
	return false
}

// ExtractRefs collects the distinct non-empty keys returned by ref over
// items, preserving first-seen order
func ExtractRefs[T any](items []T, ref func(T) string) ReferenceSet {
	seen := make(map[string]struct{}, len(items))
	refs := make(ReferenceSet, 0, len(items))
	for _, item := range items {
		key := ref(item)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		refs = append(refs, key)
	}
	return refs
}

// ExtractChannelRefs returns the distinct channel ids referenced by items
func ExtractChannelRefs[T ChannelReferencer](items []T) ReferenceSet {
	return ExtractRefs(items, func(item T) string { return item.ChannelRef() })
}
