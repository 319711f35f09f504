package repository

import (
	"context"

	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/dto"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/model"

	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for productos.
// Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via stubs.
//
// The ...Tx methods take the caller's transaction: every mutation must
// share a transaction with its audit record, so services open the tx and
// pass it down.
type ProductoRepository interface {
	CreateTx(tx *gorm.DB, p *model.Producto) error
	FindByID(ctx context.Context, id uint) (*model.Producto, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error)
	SearchByNombre(ctx context.Context, query string) ([]model.Producto, error)
	SaveTx(tx *gorm.DB, p *model.Producto) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) CreateTx(tx *gorm.DB, p *model.Producto) error {
	return tx.Create(p).Error
}

// FindByID returns the producto regardless of its activo state.
func (r *productoRepo) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Producto, error) {
	var p model.Producto
	err := tx.First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	q := r.db.WithContext(ctx).Model(&model.Producto{})

	if !filter.IncluirInactivos {
		q = q.Where("activo = true")
	}
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}

	var productos []model.Producto
	err := q.Order("fecha_creacion DESC, id DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&productos).Error
	return productos, err
}

// SearchByNombre does a case-insensitive substring match restricted to
// active rows.
func (r *productoRepo) SearchByNombre(ctx context.Context, query string) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("activo = true").
		Where("nombre ILIKE ?", "%"+query+"%").
		Order("fecha_creacion DESC, id DESC").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) SaveTx(tx *gorm.DB, p *model.Producto) error {
	return tx.Save(p).Error
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
