package otp

import (
	"strings"
	"testing"

	libOTP "github.com/pquerna/otp"
)

func TestPercentEncode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "AZaz09-_.~", want: "AZaz09-_.~"},
		{in: "alice@example.com", want: "alice%40example.com"},
		{in: "a b", want: "a%20b"},
		{in: "Acme Inc:ops/1?x=y&z#", want: "Acme%20Inc%3Aops%2F1%3Fx%3Dy%26z%23"},
		{in: "é", want: "%C3%A9"},
		{in: "%", want: "%25"},
	}

	for _, tt := range tests {
		if got := PercentEncode(tt.in); got != tt.want {
			t.Fatalf("PercentEncode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercentEncodeEscapesEveryReservedByte(t *testing.T) {
	for c := 0; c < 256; c++ {
		in := string([]byte{byte(c)})
		got := PercentEncode(in)

		if unreserved(byte(c)) {
			if got != in {
				t.Fatalf("byte %#x: expected passthrough, got %q", c, got)
			}
			continue
		}

		if len(got) != 3 || got[0] != '%' {
			t.Fatalf("byte %#x: expected %%XX, got %q", c, got)
		}
		if strings.ToUpper(got) != got {
			t.Fatalf("byte %#x: expected uppercase hex, got %q", c, got)
		}
	}
}

func TestBuildProvisioningURI(t *testing.T) {
	// Arrange
	secret := []byte("12345678901234567890")

	// Act
	uri := BuildProvisioningURI("alice@example.com", secret, "Acme Corp")

	// Assert
	want := "otpauth://totp/alice%40example.com?secret=GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ&issuer=Acme%20Corp"
	if uri != want {
		t.Fatalf("got %s\nwant %s", uri, want)
	}
}

func TestBuildProvisioningURIImportable(t *testing.T) {
	secret := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03}
	uri := NewEngine().ProvisioningURI("bob.smith@example.org", secret, "Example & Co")

	key, err := libOTP.NewKeyFromURL(uri)
	if err != nil {
		t.Fatalf("authenticator parse failed: %v", err)
	}

	if key.Type() != "totp" {
		t.Fatalf("type = %s", key.Type())
	}
	if key.AccountName() != "bob.smith@example.org" {
		t.Fatalf("account = %s", key.AccountName())
	}
	if key.Issuer() != "Example & Co" {
		t.Fatalf("issuer = %s", key.Issuer())
	}

	decoded, err := DecodeBase32(key.Secret())
	if err != nil {
		t.Fatalf("decode secret: %v", err)
	}
	if string(decoded) != string(secret) {
		t.Fatalf("secret mismatch")
	}
}
