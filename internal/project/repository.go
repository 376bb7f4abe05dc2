package project

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	FindByID(id uuid.UUID) (*Project, error)
	FindAllByUserID(userID uuid.UUID) ([]*Project, error)
	FindStandaloneByUserID(userID uuid.UUID) ([]*Project, error)
	FindAllByProgramID(programID uuid.UUID) ([]*Project, error)
	Update(p *Project) error
	DeleteCascade(tx *gorm.DB, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ProjectRepository {
	return &repository{db: db}
}

func (r *repository) FindByID(id uuid.UUID) (*Project, error) {
	var p Project
	if err := r.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAllByUserID(userID uuid.UUID) ([]*Project, error) {
	var projects []*Project
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *repository) FindStandaloneByUserID(userID uuid.UUID) ([]*Project, error) {
	var projects []*Project
	if err := r.db.Where("user_id = ? AND program_id IS NULL", userID).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *repository) FindAllByProgramID(programID uuid.UUID) ([]*Project, error) {
	var projects []*Project
	if err := r.db.Where("program_id = ?", programID).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *repository) Update(p *Project) error {
	return r.db.Save(p).Error
}

// DeleteCascade removes the project with its tasks, task materials,
// project materials, milestones and contact links.
func (r *repository) DeleteCascade(tx *gorm.DB, id uuid.UUID) error {
	stmts := []string{
		`DELETE FROM task_contacts WHERE task_id IN (SELECT id FROM tasks WHERE project_id = ?)`,
		`DELETE FROM materials WHERE task_id IN (SELECT id FROM tasks WHERE project_id = ?)`,
		`DELETE FROM tasks WHERE project_id = ?`,
		`DELETE FROM materials WHERE project_id = ?`,
		`DELETE FROM milestones WHERE project_id = ?`,
		`DELETE FROM project_contacts WHERE project_id = ?`,
		`DELETE FROM projects WHERE id = ?`,
	}
	for _, stmt := range stmts {
		if err := tx.Exec(stmt, id).Error; err != nil {
			return err
		}
	}
	return nil
}
