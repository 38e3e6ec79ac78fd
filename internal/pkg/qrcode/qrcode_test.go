package qrcode

import (
	"bytes"
	"errors"
	"image/png"
	"testing"
)

func TestRender(t *testing.T) {
	// Arrange
	content := "otpauth://totp/alice%40example.com?secret=JBSWY3DPEHPK3PXP&issuer=Acme"

	for _, lvl := range []Level{LevelL, LevelM, LevelQ, LevelH} {
		t.Run(string(lvl), func(t *testing.T) {
			// Act
			raw, err := Render(content, 300, lvl)

			// Assert
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(raw))
			if err != nil {
				t.Fatalf("decode png: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 300 {
				t.Fatalf("unexpected bounds %v", b)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		size    int
		level   Level
		want    error
	}{
		{name: "empty", content: "", size: 300, level: LevelL, want: ErrEmptyContent},
		{name: "small", content: "x", size: MinSize - 1, level: LevelL, want: ErrInvalidSize},
		{name: "large", content: "x", size: MaxSize + 1, level: LevelL, want: ErrInvalidSize},
		{name: "level", content: "x", size: 300, level: Level("Z"), want: ErrInvalidLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Render(tt.content, tt.size, tt.level); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "L", want: LevelL},
		{in: "m", want: LevelM},
		{in: " q ", want: LevelQ},
		{in: "H", want: LevelH},
		{in: "", wantErr: true},
		{in: "X", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidLevel) {
				t.Fatalf("ParseLevel(%q) expected ErrInvalidLevel, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParseLevel(%q) = %q, %v", tt.in, got, err)
		}
	}
}
