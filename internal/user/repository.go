package user

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(u *User) error
	FindByID(id uuid.UUID) (*User, error)
	FindByUsername(username string) (*User, error)
	FindByEmail(email string) (*User, error)
	FindByStripeCustomerID(customerID string) (*User, error)
	Update(u *User) error
	DeleteCascade(tx *gorm.DB, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &repository{db: db}
}

func (r *repository) Create(u *User) error {
	return r.db.Create(u).Error
}

func (r *repository) FindByID(id uuid.UUID) (*User, error) {
	var u User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByUsername(username string) (*User, error) {
	var u User
	if err := r.db.First(&u, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	if err := r.db.First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByStripeCustomerID(customerID string) (*User, error) {
	var u User
	if err := r.db.First(&u, "stripe_customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) Update(u *User) error {
	return r.db.Save(u).Error
}

// DeleteCascade removes the user and everything it transitively owns:
// programs, projects, tasks, milestones, materials, contacts and all
// contact links. Ordered child-first so no orphan rows remain.
func (r *repository) DeleteCascade(tx *gorm.DB, id uuid.UUID) error {
	stmts := []string{
		`DELETE FROM task_contacts WHERE task_id IN
			(SELECT id FROM tasks WHERE project_id IN (SELECT id FROM projects WHERE user_id = ?))`,
		`DELETE FROM materials WHERE task_id IN
			(SELECT id FROM tasks WHERE project_id IN (SELECT id FROM projects WHERE user_id = ?))`,
		`DELETE FROM tasks WHERE project_id IN (SELECT id FROM projects WHERE user_id = ?)`,
		`DELETE FROM materials WHERE project_id IN (SELECT id FROM projects WHERE user_id = ?)`,
		`DELETE FROM milestones WHERE project_id IN (SELECT id FROM projects WHERE user_id = ?)`,
		`DELETE FROM project_contacts WHERE project_id IN (SELECT id FROM projects WHERE user_id = ?)`,
		`DELETE FROM projects WHERE user_id = ?`,
		`DELETE FROM materials WHERE program_id IN (SELECT id FROM programs WHERE user_id = ?)`,
		`DELETE FROM milestones WHERE program_id IN (SELECT id FROM programs WHERE user_id = ?)`,
		`DELETE FROM program_contacts WHERE program_id IN (SELECT id FROM programs WHERE user_id = ?)`,
		`DELETE FROM programs WHERE user_id = ?`,
		`DELETE FROM contacts WHERE user_id = ?`,
		`DELETE FROM users WHERE id = ?`,
	}
	for _, stmt := range stmts {
		if err := tx.Exec(stmt, id).Error; err != nil {
			return err
		}
	}
	return nil
}
