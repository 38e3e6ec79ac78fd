package usecase

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/pkg/qrcode"
	"github.com/shandysiswandi/otpgate/internal/pkg/seal"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
)

const defaultLinkTTL = 10 * time.Minute

type RenderQRCodeInput struct {
	Name     string `validate:"required,max=64"`
	Payload  string `validate:"required"`
	IssuedAt string `validate:"required"`
	Size     int    `validate:"required"`
	ECCLevel string `validate:"required,ecclevel"`
}

type RenderQRCodeOutput struct {
	PNG []byte
}

func (s *Usecase) RenderQRCode(ctx context.Context, in RenderQRCodeInput) (*RenderQRCodeOutput, error) {
	ctx, span := s.startSpan(ctx, "RenderQRCode")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, errInvalidInput(err)
	}

	nonce := strings.TrimSuffix(in.Name, ".png")
	if nonce == in.Name || !uid.Valid(nonce) {
		return nil, errInvalidLink()
	}

	issuedAt, err := s.openIssuedAt(in.IssuedAt, nonce)
	if err != nil {
		slog.WarnContext(ctx, "qr code link timestamp rejected", "error", err)
		return nil, errInvalidLink()
	}

	ttl := s.cfg.GetSecond("otp.qrcode.link_ttl_seconds")
	if ttl <= 0 {
		ttl = defaultLinkTTL
	}

	now := s.clock.Now()
	if issuedAt.After(now) || now.Sub(issuedAt) > ttl {
		slog.WarnContext(ctx, "qr code link expired", "issued_at", issuedAt, "ttl", ttl)
		return nil, errInvalidLink()
	}

	uri, err := s.open(in.Payload, seal.Scope{Purpose: seal.PurposeProvisioningURI, Subject: nonce})
	if err != nil {
		slog.WarnContext(ctx, "qr code link payload rejected", "error", err)
		return nil, errInvalidLink()
	}

	size, err := s.qrSize(in.Size)
	if err != nil {
		return nil, err
	}

	level, err := s.qrLevel(in.ECCLevel)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Render(string(uri), size, level)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render qr code", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RenderQRCodeOutput{PNG: png}, nil
}

func (s *Usecase) openIssuedAt(value, nonce string) (time.Time, error) {
	raw, err := s.open(value, seal.Scope{Purpose: seal.PurposeIssuedAt, Subject: nonce})
	if err != nil {
		return time.Time{}, err
	}

	sec, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, err
	}

	return time.Unix(sec, 0), nil
}

func (s *Usecase) open(value string, scope seal.Scope) ([]byte, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}

	return s.sealer.Open(ciphertext, scope)
}
