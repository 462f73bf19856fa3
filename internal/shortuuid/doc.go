// Package shortuuid generates short, URL-safe identifiers.
// It encodes UUIDs with an alphabet larger than hexadecimal and produces
// cryptographically secure random strings of arbitrary length from the same alphabet.
package shortuuid
