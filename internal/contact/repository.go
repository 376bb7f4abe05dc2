package contact

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactRepository interface {
	FindByID(id uuid.UUID) (*Contact, error)
	FindAllByUserID(userID uuid.UUID) ([]*Contact, error)
	Update(c *Contact) error
	DeleteCascade(tx *gorm.DB, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ContactRepository {
	return &repository{db: db}
}

func (r *repository) FindByID(id uuid.UUID) (*Contact, error) {
	var c Contact
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindAllByUserID(userID uuid.UUID) ([]*Contact, error) {
	var contacts []*Contact
	if err := r.db.Where("user_id = ?", userID).Order("name ASC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *repository) Update(c *Contact) error {
	return r.db.Save(c).Error
}

// DeleteCascade removes the contact together with every link row that
// references it.
func (r *repository) DeleteCascade(tx *gorm.DB, id uuid.UUID) error {
	stmts := []string{
		`DELETE FROM program_contacts WHERE contact_id = ?`,
		`DELETE FROM project_contacts WHERE contact_id = ?`,
		`DELETE FROM task_contacts WHERE contact_id = ?`,
		`DELETE FROM contacts WHERE id = ?`,
	}
	for _, stmt := range stmts {
		if err := tx.Exec(stmt, id).Error; err != nil {
			return err
		}
	}
	return nil
}
