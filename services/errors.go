package services

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUserNotFound  = errors.New("user not found")
	ErrTeamNotFound  = errors.New("team not found")
	ErrAlreadyMember = errors.New("user already a member of the team")
	ErrAdminRequired = errors.New("admin access required")
)

// NotTeamMemberError names the user that failed the membership precondition,
// so the caller can say which side of the feedback pair was rejected.
type NotTeamMemberError struct {
	UserID uint
}

func (e *NotTeamMemberError) Error() string {
	return fmt.Sprintf("user %d is not a member of the team", e.UserID)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
