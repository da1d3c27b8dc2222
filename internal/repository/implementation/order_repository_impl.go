package implementation

import (
	"context"
	"errors"
	"time"

	"jobboard-be/internal/entity"
	"jobboard-be/internal/mapper"
	"jobboard-be/internal/model"
	"jobboard-be/internal/repository/contract"
	"jobboard-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OrderMapper
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &OrderRepositoryImpl{
		db:     db,
		mapper: mapper.NewOrderMapper(),
	}
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, order *entity.SubscriptionOrder) error {
	m := r.mapper.ToModel(order)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*order = *r.mapper.ToEntity(m)
	return nil
}

func (r *OrderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionOrder, error) {
	var m model.SubscriptionOrder
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OrderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionOrder, error) {
	var models []*model.SubscriptionOrder
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	orders := make([]*entity.SubscriptionOrder, len(models))
	for i, m := range models {
		orders[i] = r.mapper.ToEntity(m)
	}
	return orders, nil
}

func (r *OrderRepositoryImpl) SetAuthority(ctx context.Context, id uuid.UUID, authority string, meta map[string]interface{}) error {
	updates := map[string]interface{}{
		"authority":  authority,
		"updated_at": time.Now(),
	}
	if meta != nil {
		updates["gateway_meta"] = datatypes.JSONMap(meta)
	}
	return r.db.WithContext(ctx).
		Model(&model.SubscriptionOrder{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *OrderRepositoryImpl) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.PaymentStatus, t contract.OrderTransition) (bool, error) {
	updates := map[string]interface{}{
		"payment_status": string(to),
		"updated_at":     time.Now(),
	}
	if t.RefId != nil {
		updates["ref_id"] = *t.RefId
	}
	if t.FailureReason != nil {
		updates["failure_reason"] = *t.FailureReason
	}
	if t.GatewayMeta != nil {
		updates["gateway_meta"] = datatypes.JSONMap(t.GatewayMeta)
	}

	// Compare-and-set on the current status keeps duplicate callbacks from
	// flipping a settled order.
	res := r.db.WithContext(ctx).
		Model(&model.SubscriptionOrder{}).
		Where("id = ? AND payment_status = ?", id, string(from)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
