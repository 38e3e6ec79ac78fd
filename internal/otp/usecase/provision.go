package usecase

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	libotp "github.com/pquerna/otp"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/pkg/qrcode"
	"github.com/shandysiswandi/otpgate/internal/pkg/seal"
)

const qrcodePath = "/api/v1/otp/qrcodes/"

type ProvisionInput struct {
	ID       string
	Stamp    string
	Account  string `validate:"omitempty,max=255"`
	Issuer   string `validate:"omitempty,max=255"`
	Size     int    `validate:"gte=0"`
	ECCLevel string `validate:"omitempty,ecclevel"`
}

type ProvisionOutput struct {
	URI string
}

func (s *Usecase) Provision(ctx context.Context, in ProvisionInput) (*ProvisionOutput, error) {
	ctx, span := s.startSpan(ctx, "Provision")
	defer span.End()

	secret, err := s.deriveSecret(ctx, in.ID, in.Stamp)
	if err != nil {
		return nil, err
	}

	in.Account = strings.TrimSpace(in.Account)
	in.Issuer = strings.TrimSpace(in.Issuer)
	if err := s.validator.Validate(in); err != nil {
		return nil, errInvalidInput(err)
	}

	account := in.Account
	if account == "" {
		account = strings.TrimSpace(in.ID)
	}

	issuer := in.Issuer
	if issuer == "" {
		issuer = s.cfg.GetString("otp.provisioning.issuer")
	}

	size, err := s.qrSize(in.Size)
	if err != nil {
		return nil, err
	}

	level, err := s.qrLevel(in.ECCLevel)
	if err != nil {
		return nil, err
	}

	uri := s.otp.ProvisioningURI(account, secret, issuer)
	if _, err := libotp.NewKeyFromURL(uri); err != nil {
		slog.ErrorContext(ctx, "provisioning uri is not importable", "error", err)
		return nil, goerror.NewServer(err)
	}

	link, err := s.qrLink(uri, size, level)
	if err != nil {
		slog.ErrorContext(ctx, "failed to seal qr code link", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProvisionOutput{URI: link}, nil
}

// qrSize applies the configured default and bounds to a requested edge size.
func (s *Usecase) qrSize(size int) (int, error) {
	low := max(s.cfg.GetInt("otp.qrcode.min_size"), qrcode.MinSize)
	high := qrcode.MaxSize
	if v := s.cfg.GetInt("otp.qrcode.max_size"); v > 0 {
		high = min(v, qrcode.MaxSize)
	}

	if size == 0 {
		size = s.cfg.GetInt("otp.qrcode.default_size")
		size = min(max(size, low), high)
	}

	if size < low || size > high {
		return 0, errInvalidField("size", "size must be between "+strconv.Itoa(low)+" and "+strconv.Itoa(high))
	}

	return size, nil
}

func (s *Usecase) qrLevel(level string) (qrcode.Level, error) {
	if strings.TrimSpace(level) == "" {
		level = s.cfg.GetString("otp.qrcode.default_ecc_level")
	}

	l, err := qrcode.ParseLevel(level)
	if err != nil {
		return "", errInvalidField("ecc_level", "ecc_level must be one of L, M, Q or H")
	}

	return l, nil
}

func (s *Usecase) qrLink(uri string, size int, level qrcode.Level) (string, error) {
	nonce := s.uuid.Generate()

	payload, err := s.sealer.Seal([]byte(uri), seal.Scope{Purpose: seal.PurposeProvisioningURI, Subject: nonce})
	if err != nil {
		return "", err
	}

	issuedAt := strconv.FormatInt(s.clock.Now().Unix(), 10)
	stamp, err := s.sealer.Seal([]byte(issuedAt), seal.Scope{Purpose: seal.PurposeIssuedAt, Subject: nonce})
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("v", base64.RawURLEncoding.EncodeToString(payload))
	q.Set("t", base64.RawURLEncoding.EncodeToString(stamp))
	q.Set("s", strconv.Itoa(size))
	q.Set("ecl", string(level))

	base := strings.TrimRight(s.cfg.GetString("otp.qrcode.base_url"), "/")

	return base + qrcodePath + nonce + ".png?" + q.Encode(), nil
}
