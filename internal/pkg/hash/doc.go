// Package hash provides keyed hashing helpers.
//
// The main use is secret derivation: a server-held master key plus a caller
// supplied identity yields a stable per-subject secret, so nothing per-user has
// to be stored. Implementations live in this package behind the Deriver
// interface.
package hash
