package seal

// Purpose identifies what a sealed value is used for. Values sealed for one
// purpose cannot be opened for another.
type Purpose string

const (
	// PurposeProvisioningURI scopes sealing to otpauth:// URIs carried by QR links.
	PurposeProvisioningURI Purpose = "provisioning_uri"
	// PurposeIssuedAt scopes sealing to QR link issue timestamps.
	PurposeIssuedAt Purpose = "issued_at"
)

// Scope binds a sealed value to a purpose and an optional subject.
// It is used as AAD (Additional Authenticated Data) in AES-GCM.
type Scope struct {
	// Purpose is the sealing purpose.
	Purpose Purpose
	// Subject ties the value to something the caller can reproduce, for example
	// the link nonce. Empty is allowed.
	Subject string
}

// Sealer defines the interface for sealing and opening values.
type Sealer interface {
	// Seal returns ciphertext for the given plaintext and scope.
	Seal(plaintext []byte, scope Scope) (ciphertext []byte, err error)
	// Open returns plaintext for the given ciphertext and scope.
	Open(ciphertext []byte, scope Scope) (plaintext []byte, err error)
}

// KeyProvider provides raw AES keys.
// For AES-256-GCM, keys must be 32 bytes.
type KeyProvider interface {
	// Key returns the raw AES key to use for this scope.
	Key(scope Scope) ([]byte, error)
}
