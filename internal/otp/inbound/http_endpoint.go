package inbound

import (
	"github.com/shandysiswandi/otpgate/internal/otp/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for password validation and provisioning.
type HTTPEndpoint struct {
	uc uc
}

// Authenticate serves the combined request. Setup routes to provisioning.
func (h *HTTPEndpoint) Authenticate(r *router.Request) (any, error) {
	var req OTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if req.Setup {
		return h.provision(r, ProvisionRequest{
			ID:       req.ID,
			Stamp:    req.Stamp,
			Account:  req.Account,
			Issuer:   req.Issuer,
			Size:     req.Size,
			ECCLevel: req.ECCLevel,
		})
	}

	return h.validate(r, ValidateRequest{
		ID:       req.ID,
		Stamp:    req.Stamp,
		Password: req.Password,
		Type:     req.Type,
	})
}

// Validate checks a one-time password and answers 204 on success.
func (h *HTTPEndpoint) Validate(r *router.Request) (any, error) {
	var req ValidateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return h.validate(r, req)
}

// Provision returns a QR code link for enrolling an authenticator app.
func (h *HTTPEndpoint) Provision(r *router.Request) (any, error) {
	var req ProvisionRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return h.provision(r, req)
}

// QRCode renders the PNG behind a provisioning link.
func (h *HTTPEndpoint) QRCode(r *router.Request) (any, error) {
	size, err := r.GetQueryInt("s")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.RenderQRCode(r.Context(), usecase.RenderQRCodeInput{
		Name:     r.GetParam("name"),
		Payload:  r.GetQuery("v"),
		IssuedAt: r.GetQuery("t"),
		Size:     size,
		ECCLevel: r.GetQuery("ecl"),
	})
	if err != nil {
		return nil, err
	}

	return QRCodeResponse{png: resp.PNG}, nil
}

func (h *HTTPEndpoint) validate(r *router.Request, req ValidateRequest) (any, error) {
	if err := h.uc.Validate(r.Context(), usecase.ValidateInput{
		ID:       req.ID,
		Stamp:    req.Stamp,
		Password: req.Password,
		Type:     req.Type,
	}); err != nil {
		return nil, err
	}

	return ValidateResponse{}, nil
}

func (h *HTTPEndpoint) provision(r *router.Request, req ProvisionRequest) (any, error) {
	resp, err := h.uc.Provision(r.Context(), usecase.ProvisionInput{
		ID:       req.ID,
		Stamp:    req.Stamp,
		Account:  req.Account,
		Issuer:   req.Issuer,
		Size:     req.Size,
		ECCLevel: req.ECCLevel,
	})
	if err != nil {
		return nil, err
	}

	return ProvisionResponse{URI: resp.URI}, nil
}
