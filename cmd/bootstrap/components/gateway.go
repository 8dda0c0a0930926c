package components

import (
	"promo-slot-engine/internal/infra/gateway"
	"promo-slot-engine/internal/pkg/config"
	"promo-slot-engine/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)

func NewPaymentGateway(cfg config.Config) *gateway.PaymentClient {
	return gateway.NewPaymentClient(cfg.Payment)
}
