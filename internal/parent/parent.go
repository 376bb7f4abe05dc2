// Package parent models the single-parent pointer used by materials and
// milestones. A Ref always carries exactly one parent kind; the zero Ref is
// invalid and rejected by Validate.
package parent

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Kind string

const (
	KindProgram Kind = "program"
	KindProject Kind = "project"
	KindTask    Kind = "task"
)

var ErrNoParent = errors.New("no parent reference set")

type Ref struct {
	kind Kind
	id   uuid.UUID
}

func ForProgram(id uuid.UUID) Ref {
	return Ref{kind: KindProgram, id: id}
}

func ForProject(id uuid.UUID) Ref {
	return Ref{kind: KindProject, id: id}
}

func ForTask(id uuid.UUID) Ref {
	return Ref{kind: KindTask, id: id}
}

// FromIDs builds a Ref from nullable foreign key columns, enforcing that
// exactly one is set.
func FromIDs(programID, projectID, taskID *uuid.UUID) (Ref, error) {
	var refs []Ref
	if programID != nil {
		refs = append(refs, ForProgram(*programID))
	}
	if projectID != nil {
		refs = append(refs, ForProject(*projectID))
	}
	if taskID != nil {
		refs = append(refs, ForTask(*taskID))
	}
	if len(refs) == 0 {
		return Ref{}, ErrNoParent
	}
	if len(refs) > 1 {
		return Ref{}, fmt.Errorf("multiple parent references set")
	}
	return refs[0], nil
}

func (r Ref) Kind() Kind {
	return r.kind
}

func (r Ref) ID() uuid.UUID {
	return r.id
}

func (r Ref) IsZero() bool {
	return r.kind == ""
}

func (r Ref) Validate() error {
	if r.IsZero() || r.id == uuid.Nil {
		return ErrNoParent
	}
	return nil
}

func (r Ref) String() string {
	if r.IsZero() {
		return "parent(none)"
	}
	return fmt.Sprintf("%s(%s)", r.kind, r.id)
}
