package program

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgramRepository interface {
	FindByID(id uuid.UUID) (*Program, error)
	FindAllByUserID(userID uuid.UUID) ([]*Program, error)
	Update(p *Program) error
	DeleteCascade(tx *gorm.DB, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ProgramRepository {
	return &repository{db: db}
}

func (r *repository) FindByID(id uuid.UUID) (*Program, error) {
	var p Program
	if err := r.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAllByUserID(userID uuid.UUID) ([]*Program, error) {
	var programs []*Program
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&programs).Error; err != nil {
		return nil, err
	}
	return programs, nil
}

func (r *repository) Update(p *Program) error {
	return r.db.Save(p).Error
}

// DeleteCascade removes the program and everything beneath it: projects
// with their tasks, materials, milestones and contact links, then
// program-level materials, milestones and links, then the program row.
func (r *repository) DeleteCascade(tx *gorm.DB, id uuid.UUID) error {
	stmts := []string{
		`DELETE FROM task_contacts WHERE task_id IN
			(SELECT id FROM tasks WHERE project_id IN (SELECT id FROM projects WHERE program_id = ?))`,
		`DELETE FROM materials WHERE task_id IN
			(SELECT id FROM tasks WHERE project_id IN (SELECT id FROM projects WHERE program_id = ?))`,
		`DELETE FROM tasks WHERE project_id IN (SELECT id FROM projects WHERE program_id = ?)`,
		`DELETE FROM materials WHERE project_id IN (SELECT id FROM projects WHERE program_id = ?)`,
		`DELETE FROM milestones WHERE project_id IN (SELECT id FROM projects WHERE program_id = ?)`,
		`DELETE FROM project_contacts WHERE project_id IN (SELECT id FROM projects WHERE program_id = ?)`,
		`DELETE FROM projects WHERE program_id = ?`,
		`DELETE FROM materials WHERE program_id = ?`,
		`DELETE FROM milestones WHERE program_id = ?`,
		`DELETE FROM program_contacts WHERE program_id = ?`,
		`DELETE FROM programs WHERE id = ?`,
	}
	for _, stmt := range stmts {
		if err := tx.Exec(stmt, id).Error; err != nil {
			return err
		}
	}
	return nil
}
