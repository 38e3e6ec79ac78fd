// Package qrcode renders text payloads as square PNG QR codes.
package qrcode

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// Level is the QR error correction level.
type Level string

const (
	LevelL Level = "L"
	LevelM Level = "M"
	LevelQ Level = "Q"
	LevelH Level = "H"
)

const (
	// MinSize and MaxSize bound the rendered image edge in pixels.
	MinSize = 64
	MaxSize = 1024
)

var (
	ErrEmptyContent = errors.New("qrcode: content is empty")
	ErrInvalidLevel = errors.New("qrcode: invalid error correction level")
	ErrInvalidSize  = errors.New("qrcode: invalid size")
)

// ParseLevel accepts L, M, Q or H in any case.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToUpper(strings.TrimSpace(s))); l {
	case LevelL, LevelM, LevelQ, LevelH:
		return l, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

func (l Level) ecl() (qr.ErrorCorrectionLevel, error) {
	switch l {
	case LevelL:
		return qr.L, nil
	case LevelM:
		return qr.M, nil
	case LevelQ:
		return qr.Q, nil
	case LevelH:
		return qr.H, nil
	default:
		return 0, ErrInvalidLevel
	}
}

// Render encodes content and returns a size x size PNG.
func Render(content string, size int, level Level) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	ecl, err := level.ecl()
	if err != nil {
		return nil, err
	}

	code, err := qr.Encode(content, ecl, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qrcode: encode: %w", err)
	}

	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: scale: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("qrcode: png: %w", err)
	}

	return buf.Bytes(), nil
}
