package implementation

import (
	"context"
	"errors"

	"jobboard-be/internal/entity"
	"jobboard-be/internal/mapper"
	"jobboard-be/internal/model"
	"jobboard-be/internal/repository/contract"
	"jobboard-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AdvertisementRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AdvertisementMapper
}

func NewAdvertisementRepository(db *gorm.DB) contract.AdvertisementRepository {
	return &AdvertisementRepositoryImpl{
		db:     db,
		mapper: mapper.NewAdvertisementMapper(),
	}
}

func (r *AdvertisementRepositoryImpl) Create(ctx context.Context, ad *entity.Advertisement) error {
	m := r.mapper.ToModel(ad)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*ad = *r.mapper.ToEntity(m)
	return nil
}

func (r *AdvertisementRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Advertisement, error) {
	var m model.Advertisement
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
