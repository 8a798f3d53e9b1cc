package services

import (
	"errors"
	"strings"

	"bookstore-api/auth"
	"bookstore-api/errs"
	"bookstore-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService implements registration, login, token refresh and profile
// management on top of the user store and the token service.
type UserService struct {
	db     *gorm.DB
	tokens *auth.TokenService
}

func NewUserService(db *gorm.DB, tokens *auth.TokenService) *UserService {
	return &UserService{db: db, tokens: tokens}
}

// Register hashes the password and persists the user. Email and phone
// uniqueness is enforced by the storage constraint, so a concurrent duplicate
// registration surfaces as a conflict rather than a second success.
func (s *UserService) Register(user *models.User, password string) (*models.User, error) {
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	if !user.Role.Valid() {
		return nil, errs.Validation("invalid role: must be CUSTOMER, ADMIN or DELIVERY_AGENT")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Internal(err)
	}
	user.PasswordHash = string(hash)

	if err := s.db.Create(user).Error; err != nil {
		return nil, translateDuplicate(err, "email or phone already registered")
	}
	return user, nil
}

// Login resolves the principal by email, then phone, then username. A
// password mismatch at a matched identifier is terminal: it never falls
// through to the next identifier kind.
func (s *UserService) Login(identifier, password string) (*models.User, string, string, error) {
	lookups := []string{"email = ?", "phone = ?", "username = ?"}
	for _, cond := range lookups {
		var user models.User
		err := s.db.Where(cond, identifier).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, "", "", errs.Internal(err)
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return nil, "", "", errs.Authentication("invalid password")
		}
		access, err := s.tokens.IssueAccessToken(user.ID, user.Username, user.Role)
		if err != nil {
			return nil, "", "", errs.Internal(err)
		}
		refresh, err := s.tokens.IssueRefreshToken(user.ID, user.Username)
		if err != nil {
			return nil, "", "", errs.Internal(err)
		}
		return &user, access, refresh, nil
	}
	return nil, "", "", errs.NotFound("user not found")
}

// Refresh validates a refresh token and issues a new access token. The
// refresh token itself is not rotated.
func (s *UserService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return "", errs.Authentication("invalid refresh token")
	}
	var user models.User
	if err := s.db.First(&user, claims.UserID).Error; err != nil {
		return "", errs.Authentication("invalid refresh token")
	}
	return s.tokens.IssueAccessToken(user.ID, user.Username, user.Role)
}

// ProfilePatch carries optional profile updates; empty fields are left
// untouched. Role is deliberately absent: it is never mutable here.
type ProfilePatch struct {
	Username string
	Email    string
	Phone    string
	Address  string
	Password string
}

// UpdateProfile applies a patch to the user's profile. Non-admin callers may
// only update themselves. Since username may affect claims, a fresh access
// token is issued alongside the updated profile.
func (s *UserService) UpdateProfile(id uint, patch ProfilePatch, actorID uint, actorRole models.Role) (*models.User, string, error) {
	if actorRole != models.RoleAdmin && actorID != id {
		return nil, "", errs.Authorization("you can update only your own profile")
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", errs.NotFound("user not found")
		}
		return nil, "", errs.Internal(err)
	}

	if patch.Email != "" && patch.Email != user.Email {
		if s.existsOther(id, "email = ?", patch.Email) {
			return nil, "", errs.Conflict("email already exists")
		}
		user.Email = patch.Email
	}
	if patch.Phone != "" && patch.Phone != user.Phone {
		if s.existsOther(id, "phone = ?", patch.Phone) {
			return nil, "", errs.Conflict("phone number already exists")
		}
		user.Phone = patch.Phone
	}
	if patch.Username != "" && patch.Username != user.Username {
		if s.existsOther(id, "username = ?", patch.Username) {
			return nil, "", errs.Conflict("username already exists")
		}
		user.Username = patch.Username
	}
	if patch.Address != "" {
		user.Address = patch.Address
	}
	if strings.TrimSpace(patch.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, "", errs.Internal(err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, "", translateDuplicate(err, "email or phone already exists")
	}

	access, err := s.tokens.IssueAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", errs.Internal(err)
	}
	return &user, access, nil
}

// Delete removes a user and their unconsumed cart items. Admin only.
func (s *UserService) Delete(id uint, actorRole models.Role) error {
	if actorRole != models.RoleAdmin {
		return errs.Authorization("access denied")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("user not found")
			}
			return errs.Internal(err)
		}
		if err := tx.Where("user_id = ? AND order_id IS NULL", id).Delete(&models.CartItem{}).Error; err != nil {
			return errs.Internal(err)
		}
		if err := tx.Delete(&user).Error; err != nil {
			return errs.Internal(err)
		}
		return nil
	})
}

func (s *UserService) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user not found")
		}
		return nil, errs.Internal(err)
	}
	return &user, nil
}

func (s *UserService) FindAll() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, errs.Internal(err)
	}
	return users, nil
}

func (s *UserService) existsOther(id uint, cond, value string) bool {
	var count int64
	s.db.Model(&models.User{}).Where(cond, value).Where("id <> ?", id).Count(&count)
	return count > 0
}

// translateDuplicate turns storage-level unique constraint violations into
// conflicts instead of internal errors.
func translateDuplicate(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint") {
		return errs.Conflict(msg)
	}
	return errs.Internal(err)
}
