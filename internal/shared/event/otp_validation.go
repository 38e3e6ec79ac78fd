package event

import "time"

const OTPValidationDestination string = "otp.validation.v1"

// OTPValidationMessage never carries the password, the secret or the device stamp.
type OTPValidationMessage struct {
	Result     string    `json:"result"`
	Channel    string    `json:"channel"`
	OccurredAt time.Time `json:"occurred_at"`
}
