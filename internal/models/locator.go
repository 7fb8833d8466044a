package models

// LocateResult holds the files found by the release package locator.
type LocateResult struct {
	Files   []string       // deduplicated, in first-seen order
	Matches map[string]int // match count per pattern
}
