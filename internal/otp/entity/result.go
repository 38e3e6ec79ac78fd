package entity

// ValidationResult is the outcome recorded for a validation attempt.
type ValidationResult string

const (
	ValidationSuccess   ValidationResult = "success"
	ValidationMismatch  ValidationResult = "mismatch"
	// ValidationMalformed is a mismatch where the password was not a decimal code at all.
	ValidationMalformed ValidationResult = "malformed"
)
