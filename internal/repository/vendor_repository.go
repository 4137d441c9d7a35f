package repository

import (
	"github.com/brfservice/brf-portal-api/internal/database"
	"github.com/brfservice/brf-portal-api/internal/models"
	"gorm.io/gorm"
)

// GormVendorRepository is a GORM implementation of VendorRepository
type GormVendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new VendorRepository
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &GormVendorRepository{db: db}
}

// Create creates a new vendor
func (r *GormVendorRepository) Create(vendor *models.Vendor) error {
	return r.db.Create(vendor).Error
}

// FindByID finds a vendor by ID
func (r *GormVendorRepository) FindByID(id uint64) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.First(&vendor, id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// ListByOrganization lists an organization's vendors by name
func (r *GormVendorRepository) ListByOrganization(organizationID uint64) ([]models.Vendor, error) {
	var vendors []models.Vendor
	if err := r.db.Scopes(database.ForOrganization(organizationID)).
		Order("name ASC").
		Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

// Update updates a vendor
func (r *GormVendorRepository) Update(vendor *models.Vendor) error {
	return r.db.Save(vendor).Error
}
