package store

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

// Parcel is one enriched property record.
type Parcel struct {
	ID        string `gorm:"primaryKey"`
	BlockLot  string `gorm:"column:block_lot;uniqueIndex"`
	Block     string `gorm:"column:block;index"`
	Lot       string `gorm:"column:lot"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Parcel) TableName() string {
	return "parcel"
}

// NewParcel builds a parcel row from an already split identifier.
func NewParcel(blockLot, block, lot string) Parcel {
	return Parcel{
		ID:       uuid.NewString(),
		BlockLot: blockLot,
		Block:    block,
		Lot:      lot,
	}
}

// Backend provides access to the parcel table.
type Backend struct {
	db  *gorm.DB
	dsn string
}

// NewBackend connects to the database at dsn and migrates the parcel table.
func NewBackend(dsn string) (*Backend, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}
	if err = db.AutoMigrate(&Parcel{}); err != nil {
		return nil, fmt.Errorf("error migrating parcel table: %v", err)
	}
	return &Backend{db: db, dsn: dsn}, nil
}

// SaveParcels upserts parcels on their block_lot value, so re-processing a
// batch updates rows in place instead of duplicating them.
func (b *Backend) SaveParcels(ctx context.Context, parcels []Parcel) error {
	if len(parcels) == 0 {
		return nil
	}
	result := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "block_lot"}},
		DoUpdates: clause.AssignmentColumns([]string{"block", "lot", "updated_at"}),
	}).Create(&parcels)
	if result.Error != nil {
		return fmt.Errorf("error saving %d parcels: %v", len(parcels), result.Error)
	}
	return nil
}

// FindParcelByBlockLot returns the parcel stored under the combined identifier.
func (b *Backend) FindParcelByBlockLot(ctx context.Context, blockLot string) (*Parcel, error) {
	var parcel Parcel
	if err := b.db.WithContext(ctx).Where("block_lot = ?", blockLot).First(&parcel).Error; err != nil {
		return nil, err
	}
	return &parcel, nil
}

// FindParcelsByBlock returns every parcel within one cadastral block.
func (b *Backend) FindParcelsByBlock(ctx context.Context, block string) ([]Parcel, error) {
	var parcels []Parcel
	if err := b.db.WithContext(ctx).Where("block = ?", block).Order("lot").Find(&parcels).Error; err != nil {
		return nil, err
	}
	return parcels, nil
}

// CountParcels returns the total number of stored parcels.
func (b *Backend) CountParcels(ctx context.Context) (int64, error) {
	var count int64
	if err := b.db.WithContext(ctx).Model(&Parcel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
