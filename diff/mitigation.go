package diff

// mitigations holds the static, change-type-keyed suggestions attached to
// every detected change.
var mitigations = map[ChangeType][]string{
	Removed: {
		"provide a compatibility shim or deprecation period before removal",
		"document a migration path for remaining callers",
	},
	Added: {
		"review the new surface for naming and documentation consistency",
	},
	SignatureChanged: {
		"keep a backward-compatible overload or wrapper during migration",
		"update call sites and examples in the same change set",
	},
	VisibilityReduced: {
		"verify no external consumer still references the entity",
		"stage the reduction behind a deprecation notice",
	},
	VisibilityWidened: {
		"confirm the wider surface is intended to be supported long term",
	},
}

// Mitigations returns the suggestion list for a change type. The returned
// slice is a copy; callers may append to it.
func Mitigations(changeType ChangeType) []string {
	source := mitigations[changeType]
	if len(source) == 0 {
		return nil
	}
	result := make([]string, len(source))
	copy(result, source)
	return result
}
