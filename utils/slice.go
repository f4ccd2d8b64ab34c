package utils

// UniqueStrings removes duplicate values while preserving first-seen order.
func UniqueStrings(slice []string) []string {
	seen := make(map[string]bool)
	list := []string{}
	for _, entry := range slice {
		if !seen[entry] {
			seen[entry] = true
			list = append(list, entry)
		}
	}
	return list
}

// ContainsString reports whether value is present in slice.
func ContainsString(slice []string, value string) bool {
	for _, entry := range slice {
		if entry == value {
			return true
		}
	}
	return false
}

// RemoveString returns slice without any occurrence of value.
func RemoveString(slice []string, value string) []string {
	out := slice[:0]
	for _, entry := range slice {
		if entry != value {
			out = append(out, entry)
		}
	}
	return out
}
