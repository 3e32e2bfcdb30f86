package compare

import "errors"

var (
	// ErrInsufficientOverlap means a single entity comparison had fewer
	// shared usable markers than the minimum. The entity is excluded from
	// ranking; the overall analysis continues.
	ErrInsufficientOverlap = errors.New("insufficient marker overlap")

	// ErrEmptyCorpus means the reference corpus for one comparison type is
	// missing or empty. Fatal for that comparison type only.
	ErrEmptyCorpus = errors.New("reference corpus is empty")

	// ErrNoValidComparisons means every entity in the corpus was excluded.
	// Surfaced explicitly so "cannot rank" is never confused with an empty
	// result meaning "no similarity".
	ErrNoValidComparisons = errors.New("no reference entity shares enough markers")
)
