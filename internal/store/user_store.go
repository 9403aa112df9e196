package store

import (
	"errors"

	"chatwire/backend/internal/models"

	"gorm.io/gorm"
)

// UserStore is the identity store: durable user records keyed by id,
// username, or login. Credential hashing and verification live with the
// caller; the store only holds the opaque hash.
type UserStore interface {
	Create(username, email, passwordHash string) (*models.User, error)
	ByID(id uint) (*models.User, error)
	ByUsername(username string) (*models.User, error)
	ByLogin(login string) (*models.User, error)
	Search(query string, excludeID uint, page, limit int) ([]models.User, int64, error)
}

// Users is the gorm-backed UserStore.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Create inserts a new user. Returns ErrConflict if the username or email
// is already taken; the unique columns back the check against concurrent
// signups.
func (s *Users) Create(username, email, passwordHash string) (*models.User, error) {
	var existing models.User
	err := s.db.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &user, nil
}

func (s *Users) ByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Users) ByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ByLogin resolves a user by username or email, for login.
func (s *Users) ByLogin(login string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ? OR email = ?", login, login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Search returns a page of users whose username contains query, plus the
// total count before pagination. The excludeID user (the viewer) is left
// out of both the page and the count.
func (s *Users) Search(query string, excludeID uint, page, limit int) ([]models.User, int64, error) {
	q := s.db.Model(&models.User{}).Where("id <> ?", excludeID)
	if query != "" {
		q = q.Where("username LIKE ?", "%"+query+"%")
	}

	var totalItems int64
	if err := q.Count(&totalItems).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	offset := (page - 1) * limit
	if err := q.Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, totalItems, nil
}
