package person

import (
	"github.com/m-mizutani/kith/pkg/interfaces"
)

// UseCase provides person-related operations
type UseCase struct {
	repo interfaces.PeopleRepository
}

// New creates a new person UseCase instance
func New(repo interfaces.PeopleRepository) *UseCase {
	return &UseCase{repo: repo}
}
