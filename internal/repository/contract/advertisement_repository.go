package contract

import (
	"context"

	"jobboard-be/internal/entity"
	"jobboard-be/internal/repository/specification"
)

type AdvertisementRepository interface {
	Create(ctx context.Context, ad *entity.Advertisement) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Advertisement, error)
}
