// Package seal encrypts short values that travel through untrusted hands, such
// as query parameters of a provisioning link, so they come back tamper-evident
// and bound to the purpose they were sealed for.
package seal
