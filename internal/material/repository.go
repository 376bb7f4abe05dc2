package material

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/planora-app/planora/internal/parent"
)

type MaterialRepository interface {
	Create(m *Material) error
	FindByID(id uuid.UUID) (*Material, error)
	FindAllByParent(ref parent.Ref) ([]*Material, error)
	Update(m *Material) error
	Delete(id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) MaterialRepository {
	return &repository{db: db}
}

func (r *repository) Create(m *Material) error {
	return r.db.Create(m).Error
}

func (r *repository) FindByID(id uuid.UUID) (*Material, error) {
	var m Material
	if err := r.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindAllByParent(ref parent.Ref) ([]*Material, error) {
	var column string
	switch ref.Kind() {
	case parent.KindProgram:
		column = "program_id"
	case parent.KindProject:
		column = "project_id"
	default:
		column = "task_id"
	}
	var materials []*Material
	if err := r.db.Where(column+" = ?", ref.ID()).Order("name asc").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *repository) Update(m *Material) error {
	return r.db.Save(m).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Material{}, "id = ?", id).Error
}
