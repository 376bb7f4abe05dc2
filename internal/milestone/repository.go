package milestone

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/planora-app/planora/internal/parent"
)

type MilestoneRepository interface {
	Create(m *Milestone) error
	FindByID(id uuid.UUID) (*Milestone, error)
	FindAllByParent(ref parent.Ref) ([]*Milestone, error)
	Update(m *Milestone) error
	Delete(id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) MilestoneRepository {
	return &repository{db: db}
}

func (r *repository) Create(m *Milestone) error {
	return r.db.Create(m).Error
}

func (r *repository) FindByID(id uuid.UUID) (*Milestone, error) {
	var m Milestone
	if err := r.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindAllByParent(ref parent.Ref) ([]*Milestone, error) {
	column := "program_id"
	if ref.Kind() == parent.KindProject {
		column = "project_id"
	}
	var milestones []*Milestone
	if err := r.db.Where(column+" = ?", ref.ID()).Order("target_date asc").Find(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}

func (r *repository) Update(m *Milestone) error {
	return r.db.Save(m).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Milestone{}, "id = ?", id).Error
}
