package repository

import (
	"context"

	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/dto"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/model"

	"gorm.io/gorm"
)

// ClienteRepository defines the data access contract for clientes.
// Existence checks run inside the mutation transaction and span BOTH
// active and inactive rows: a soft-deleted cliente still occupies its
// email and documento.
type ClienteRepository interface {
	CreateTx(tx *gorm.DB, c *model.Cliente) error
	FindByID(ctx context.Context, id uint) (*model.Cliente, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.Cliente, error)
	FindByEmail(ctx context.Context, email string) (*model.Cliente, error)
	List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, error)
	SearchByNombre(ctx context.Context, query string) ([]model.Cliente, error)
	SaveTx(tx *gorm.DB, c *model.Cliente) error

	// ExistsByEmailTx / ExistsByDocumentoTx ignore the row excludeID so
	// updates don't collide with the record being updated.
	ExistsByEmailTx(tx *gorm.DB, email string, excludeID uint) (bool, error)
	ExistsByDocumentoTx(tx *gorm.DB, documento string, excludeID uint) (bool, error)

	DB() *gorm.DB
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) CreateTx(tx *gorm.DB, c *model.Cliente) error {
	return tx.Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uint) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Cliente, error) {
	var c model.Cliente
	err := tx.First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByEmail matches the exact email among active clientes only.
func (r *clienteRepo) FindByEmail(ctx context.Context, email string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Where("email = ? AND activo = true", email).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, error) {
	q := r.db.WithContext(ctx).Model(&model.Cliente{})

	if !filter.IncluirInactivos {
		q = q.Where("activo = true")
	}
	if filter.Ciudad != "" {
		q = q.Where("ciudad = ?", filter.Ciudad)
	}

	var clientes []model.Cliente
	err := q.Order("fecha_creacion DESC, id DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) SearchByNombre(ctx context.Context, query string) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).
		Where("activo = true").
		Where("nombre ILIKE ?", "%"+query+"%").
		Order("fecha_creacion DESC, id DESC").
		Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) SaveTx(tx *gorm.DB, c *model.Cliente) error {
	return tx.Save(c).Error
}

func (r *clienteRepo) ExistsByEmailTx(tx *gorm.DB, email string, excludeID uint) (bool, error) {
	var count int64
	err := tx.Model(&model.Cliente{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *clienteRepo) ExistsByDocumentoTx(tx *gorm.DB, documento string, excludeID uint) (bool, error) {
	var count int64
	err := tx.Model(&model.Cliente{}).
		Where("documento = ? AND id <> ?", documento, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *clienteRepo) DB() *gorm.DB { return r.db }
