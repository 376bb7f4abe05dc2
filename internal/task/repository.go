package task

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository interface {
	FindByID(id uuid.UUID) (*Task, error)
	FindAllByProjectID(projectID uuid.UUID) ([]*Task, error)
	Update(t *Task) error
	DeleteCascade(tx *gorm.DB, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) TaskRepository {
	return &repository{db: db}
}

func (r *repository) FindByID(id uuid.UUID) (*Task, error) {
	var t Task
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindAllByProjectID(projectID uuid.UUID) ([]*Task, error) {
	var tasks []*Task
	if err := r.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *repository) Update(t *Task) error {
	return r.db.Save(t).Error
}

// DeleteCascade removes the task with its materials and contact links.
func (r *repository) DeleteCascade(tx *gorm.DB, id uuid.UUID) error {
	stmts := []string{
		`DELETE FROM task_contacts WHERE task_id = ?`,
		`DELETE FROM materials WHERE task_id = ?`,
		`DELETE FROM tasks WHERE id = ?`,
	}
	for _, stmt := range stmts {
		if err := tx.Exec(stmt, id).Error; err != nil {
			return err
		}
	}
	return nil
}
