package main

// truncate shortens value to at most limit characters, counting runes so a
// multi-byte title is never cut mid-character.
func truncate(value string, limit int) string {
	if limit <= 3 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-3]) + "..."
}

func valueOrDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
