package inbound

import (
	"context"

	"github.com/shandysiswandi/otpgate/internal/otp/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/router"
)

type uc interface {
	Validate(ctx context.Context, in usecase.ValidateInput) error
	Provision(ctx context.Context, in usecase.ProvisionInput) (*usecase.ProvisionOutput, error)
	RenderQRCode(ctx context.Context, in usecase.RenderQRCodeInput) (*usecase.RenderQRCodeOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/otp", end.Authenticate)
	r.POST("/api/v1/otp/validate", end.Validate)
	r.POST("/api/v1/otp/provision", end.Provision)
	//
	r.GET("/api/v1/otp/qrcodes/:name", end.QRCode)
}
