// Package sanitizer normalizes caller-supplied input before it reaches
// storage or comparisons. Email addresses in particular must be normalized
// the same way everywhere: uniqueness checks, login lookups, and reset
// lookups all compare the normalized form.
package sanitizer
