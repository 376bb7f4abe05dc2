package attachment

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/planora-app/planora/internal/contact"
	"github.com/planora-app/planora/internal/parent"
)

type AttachmentRepository interface {
	Exists(ref parent.Ref, contactID uuid.UUID) (bool, error)
	Link(ref parent.Ref, contactID uuid.UUID) error
	Unlink(ref parent.Ref, contactID uuid.UUID) error
	FindContacts(ref parent.Ref) ([]contact.Contact, error)
}

type attachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Exists(ref parent.Ref, contactID uuid.UUID) (bool, error) {
	var count int64
	tx := r.scope(ref).Where("contact_id = ?", contactID).Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (r *attachmentRepository) Link(ref parent.Ref, contactID uuid.UUID) error {
	switch ref.Kind() {
	case parent.KindProgram:
		return r.db.Create(&ProgramContact{ProgramID: ref.ID(), ContactID: contactID}).Error
	case parent.KindProject:
		return r.db.Create(&ProjectContact{ProjectID: ref.ID(), ContactID: contactID}).Error
	default:
		return r.db.Create(&TaskContact{TaskID: ref.ID(), ContactID: contactID}).Error
	}
}

func (r *attachmentRepository) Unlink(ref parent.Ref, contactID uuid.UUID) error {
	return r.scope(ref).Where("contact_id = ?", contactID).Delete(r.model(ref)).Error
}

func (r *attachmentRepository) FindContacts(ref parent.Ref) ([]contact.Contact, error) {
	var contacts []contact.Contact
	tx := r.db.
		Joins("JOIN "+r.table(ref)+" lk ON lk.contact_id = contacts.id").
		Where("lk."+r.column(ref)+" = ?", ref.ID()).
		Order("contacts.name asc").
		Find(&contacts)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return contacts, nil
}

func (r *attachmentRepository) scope(ref parent.Ref) *gorm.DB {
	return r.db.Model(r.model(ref)).Where(r.column(ref)+" = ?", ref.ID())
}

func (r *attachmentRepository) model(ref parent.Ref) any {
	switch ref.Kind() {
	case parent.KindProgram:
		return &ProgramContact{}
	case parent.KindProject:
		return &ProjectContact{}
	default:
		return &TaskContact{}
	}
}

func (r *attachmentRepository) table(ref parent.Ref) string {
	switch ref.Kind() {
	case parent.KindProgram:
		return "program_contacts"
	case parent.KindProject:
		return "project_contacts"
	default:
		return "task_contacts"
	}
}

func (r *attachmentRepository) column(ref parent.Ref) string {
	switch ref.Kind() {
	case parent.KindProgram:
		return "program_id"
	case parent.KindProject:
		return "project_id"
	default:
		return "task_id"
	}
}
