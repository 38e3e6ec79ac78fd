package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

const sample = `
app:
  name: otpgate
  maintenance: false
otp:
  master_key: c2VjcmV0LWtleQ==
  channels:
    app:
      step_seconds: 30
      digits: 6
qrcode:
  size_ratio: 1.5
  link_ttl_seconds: 600
messaging:
  kafka:
    brokers: " kafka-1:9092, ,kafka-2:9092 "
`

func TestNewViperFromBytes(t *testing.T) {
	// Arrange
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer cfg.Close()

	// Act & Assert
	if got := cfg.GetString("app.name"); got != "otpgate" {
		t.Fatalf("app.name = %q", got)
	}
	if cfg.GetBool("app.maintenance") {
		t.Fatal("app.maintenance should be false")
	}
	if got := cfg.GetInt("otp.channels.app.step_seconds"); got != 30 {
		t.Fatalf("step_seconds = %d", got)
	}
	if got := cfg.GetFloat64("qrcode.size_ratio"); got != 1.5 {
		t.Fatalf("size_ratio = %v", got)
	}
	if got := cfg.GetSecond("qrcode.link_ttl_seconds"); got != 10*time.Minute {
		t.Fatalf("link_ttl_seconds = %v", got)
	}
	if got := string(cfg.GetBinary("otp.master_key")); got != "secret-key" {
		t.Fatalf("master_key = %q", got)
	}
	if got := cfg.GetArray("messaging.kafka.brokers"); !reflect.DeepEqual(got, []string{"kafka-1:9092", "kafka-2:9092"}) {
		t.Fatalf("brokers = %#v", got)
	}
	if !cfg.IsSet("otp.channels.app.digits") || cfg.IsSet("otp.channels.sms.digits") {
		t.Fatal("IsSet mismatch")
	}
}

func TestNewViperFromBytesErrors(t *testing.T) {
	if _, err := NewViperFromBytes("", []byte(sample)); err == nil {
		t.Fatal("expected error for empty config type")
	}
	if _, err := NewViperFromBytes("yaml", []byte("app: [")); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestGetBinaryInvalid(t *testing.T) {
	cfg, _ := NewViperFromBytes("yaml", []byte("key: '%%%'"))

	if got := cfg.GetBinary("key"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := cfg.GetArray("missing"); len(got) != 0 {
		t.Fatalf("expected empty, got %#v", got)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("OTPGATE_OTP_CHANNELS_SMS_DIGITS", "8")
	t.Setenv("OTPGATE_APP_NAME", "from-env")

	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := cfg.GetString("app.name"); got != "from-env" {
		t.Fatalf("app.name = %q", got)
	}
	if got := cfg.GetInt("otp.channels.sms.digits"); got != 8 {
		t.Fatalf("sms digits = %d", got)
	}
	if !cfg.IsSet("otp.channels.sms.digits") {
		t.Fatal("env value must count as set")
	}
}

func TestNewViperFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte(sample), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := NewViper(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := cfg.GetString("app.name"); got != "otpgate" {
		t.Fatalf("app.name = %q", got)
	}

	if _, err := NewViper(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestGetArrayList(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte("cors:\n  - http://a\n  - ' '\n  - http://b\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := cfg.GetArray("cors"); !reflect.DeepEqual(got, []string{"http://a", "http://b"}) {
		t.Fatalf("cors = %#v", got)
	}
}
