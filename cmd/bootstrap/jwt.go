package bootstrap

import (
	"stayhub/internal/handler/middleware"
	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/jwt"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		fx.Annotate(
			NewTokenValidator,
			fx.As(new(middleware.TokenValidator)),
		),
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Duration)
}

type tokenValidator struct {
	svc *jwt.Service
}

func NewTokenValidator(svc *jwt.Service) *tokenValidator {
	return &tokenValidator{svc: svc}
}

func (v *tokenValidator) ValidateToken(token string) (uuid.UUID, string, error) {
	claims, err := v.svc.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	return claims.UserID, claims.Role, nil
}
