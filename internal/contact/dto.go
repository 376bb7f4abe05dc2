package contact

type ContactForm struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=20"`
	Role  string `json:"role" validate:"max=100"`
	Notes string `json:"notes"`
}
