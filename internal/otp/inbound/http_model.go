package inbound

import "net/http"

// OTPRequest is the combined request: Setup selects provisioning, otherwise
// the password is validated.
type OTPRequest struct {
	ID       string `json:"id"`
	Stamp    string `json:"stamp"`
	Password string `json:"password"`
	Type     string `json:"type"`
	Setup    bool   `json:"setup"`
	Account  string `json:"account"`
	Issuer   string `json:"issuer"`
	Size     int    `json:"size"`
	ECCLevel string `json:"ecc_level"`
}

type ValidateRequest struct {
	ID       string `json:"id"`
	Stamp    string `json:"stamp"`
	Password string `json:"password"`
	Type     string `json:"type"`
}

type ValidateResponse struct{}

func (ValidateResponse) StatusCode() int {
	return http.StatusNoContent
}

type ProvisionRequest struct {
	ID       string `json:"id"`
	Stamp    string `json:"stamp"`
	Account  string `json:"account"`
	Issuer   string `json:"issuer"`
	Size     int    `json:"size"`
	ECCLevel string `json:"ecc_level"`
}

type ProvisionResponse struct {
	URI string `json:"uri"`
}

func (ProvisionResponse) Message() string {
	return "Scan the QR code with an authenticator app"
}

type QRCodeResponse struct {
	png []byte
}

func (QRCodeResponse) ContentType() string {
	return "image/png"
}

func (q QRCodeResponse) Body() []byte {
	return q.png
}
