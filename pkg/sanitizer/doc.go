// Package sanitizer normalizes guest-supplied input before it is validated
// and handed to the store.
//
// All functions are idempotent: applying them twice yields the same result
// as applying them once. They never fail; input that cannot be normalized is
// returned trimmed so validation can report it.
//
// Normalization includes:
//   - Phone numbers: E.164 (+[country][number]), national numbers resolved against the default region
//   - Emails: trimmed and lowercased
//   - Strings: whitespace collapsed, leading/trailing spaces trimmed
//   - URLs: trimmed, scheme and host lowercased
package sanitizer
