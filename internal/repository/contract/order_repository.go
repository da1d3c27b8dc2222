package contract

import (
	"context"

	"jobboard-be/internal/entity"
	"jobboard-be/internal/repository/specification"

	"github.com/google/uuid"
)

// OrderTransition carries the columns written together with a status change.
// Nil fields are left untouched.
type OrderTransition struct {
	RefId         *string
	FailureReason *string
	GatewayMeta   map[string]interface{}
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.SubscriptionOrder) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionOrder, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionOrder, error)

	// SetAuthority records the gateway authority of the latest payment request.
	SetAuthority(ctx context.Context, id uuid.UUID, authority string, meta map[string]interface{}) error

	// TransitionStatus moves the order from `from` to `to` only if its current
	// status is still `from`. It reports whether a row was changed.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.PaymentStatus, t OrderTransition) (bool, error)
}
