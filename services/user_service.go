package services

import (
	"errors"
	"strings"

	"team-feedback-server/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
}

func NewUserService(db *gorm.DB, log *zap.SugaredLogger) *UserService {
	return &UserService{DB: db, Log: log}
}

// Register creates a user with a bcrypt-hashed password. The plaintext never
// reaches storage or the logs. Duplicate emails fail with ErrEmailTaken; the
// unique index on users.email backs the pre-check, so a concurrent duplicate
// also surfaces as ErrEmailTaken instead of a raw constraint error.
func (s *UserService) Register(name, email, password, role string) (*models.User, error) {
	email = strings.ToLower(email)

	hashedPassword, hashErr := hashAndSaltPassword(password)
	if hashErr != nil {
		return nil, hashErr
	}

	if role == "" {
		role = models.RoleMember
	}

	newUser := models.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Role:     role,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		query := tx.Where("email = ?", email).Limit(1).Find(&existing)
		if query.Error != nil {
			return query.Error
		}
		if query.RowsAffected > 0 {
			return ErrEmailTaken
		}
		return tx.Create(&newUser).Error
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) || isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.Log.Infow("user registered", "userID", newUser.ID, "role", newUser.Role)
	return &newUser, nil
}

// Authenticate returns the matching user, or nil when the email is unknown or
// the password does not match. A bad credential is a normal outcome here, not
// an error.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	query := s.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(&user)
	if query.Error != nil {
		return nil, query.Error
	}
	if query.RowsAffected == 0 {
		return nil, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil
	}
	return &user, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns a page of users, optionally filtered by role or a name/email
// search term.
func (s *UserService) List(role, q string, page, perPage int) ([]models.User, int64, error) {
	query := s.DB.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(email) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := query.Order("id").Offset((page - 1) * perPage).Limit(perPage).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}
