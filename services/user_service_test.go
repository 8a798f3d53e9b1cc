package services

import (
	"sync"
	"testing"

	"bookstore-api/auth"
	"bookstore-api/errs"
	"bookstore-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	tokens := auth.NewTokenService([]byte("test-access-secret"), []byte("test-refresh-secret"))
	return NewUserService(testDB(t), tokens)
}

func register(t *testing.T, svc *UserService, username, email, phone, password string, role models.Role) *models.User {
	t.Helper()
	user, err := svc.Register(&models.User{
		Username: username,
		Email:    email,
		Phone:    phone,
		Role:     role,
	}, password)
	require.NoError(t, err)
	return user
}

func TestRegister(t *testing.T) {
	t.Run("should hash password and default role to customer", func(t *testing.T) {
		svc := newUserService(t)

		user := register(t, svc, "alice", "alice@example.com", "111", "secret1", "")

		assert.Equal(t, models.RoleCustomer, user.Role)
		assert.NotEqual(t, "secret1", user.PasswordHash)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
	})

	t.Run("should reject duplicate email with conflict", func(t *testing.T) {
		svc := newUserService(t)
		register(t, svc, "alice", "alice@example.com", "111", "secret1", "")

		_, err := svc.Register(&models.User{
			Username: "bob",
			Email:    "alice@example.com",
			Phone:    "222",
		}, "secret2")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should reject duplicate phone with conflict", func(t *testing.T) {
		svc := newUserService(t)
		register(t, svc, "alice", "alice@example.com", "111", "secret1", "")

		_, err := svc.Register(&models.User{
			Username: "bob",
			Email:    "bob@example.com",
			Phone:    "111",
		}, "secret2")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should reject unknown role", func(t *testing.T) {
		svc := newUserService(t)

		_, err := svc.Register(&models.User{
			Username: "mallory",
			Email:    "m@example.com",
			Phone:    "333",
			Role:     "SUPERUSER",
		}, "secret1")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("concurrent registrations with the same email: exactly one wins", func(t *testing.T) {
		svc := newUserService(t)

		var wg sync.WaitGroup
		results := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = svc.Register(&models.User{
					Username: "racer",
					Email:    "race@example.com",
					Phone:    "90" + string(rune('0'+i)),
				}, "secret1")
			}(i)
		}
		wg.Wait()

		var successes, conflicts int
		for _, err := range results {
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, errs.ErrConflict):
				conflicts++
			}
		}
		assert.Equal(t, 1, successes)
		assert.Equal(t, 1, conflicts)
	})
}

func TestLogin(t *testing.T) {
	setup := func(t *testing.T) *UserService {
		svc := newUserService(t)
		register(t, svc, "alice", "alice@example.com", "111", "secret1", "")
		return svc
	}

	t.Run("should login by email", func(t *testing.T) {
		svc := setup(t)

		user, access, refresh, err := svc.Login("alice@example.com", "secret1")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("should login by phone", func(t *testing.T) {
		svc := setup(t)

		user, _, _, err := svc.Login("111", "secret1")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("should login by username", func(t *testing.T) {
		svc := setup(t)

		user, _, _, err := svc.Login("alice", "secret1")

		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("should fail with not found for unknown identifier", func(t *testing.T) {
		svc := setup(t)

		_, _, _, err := svc.Login("nobody", "secret1")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("wrong password at matched identifier is terminal", func(t *testing.T) {
		svc := setup(t)
		// bob's username equals alice's phone; the phone match wins first and
		// bob's password must not fall through to the username lookup
		register(t, svc, "111", "bob@example.com", "222", "bobsecret", "")

		_, _, _, err := svc.Login("111", "bobsecret")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAuthentication)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("should issue a new access token only", func(t *testing.T) {
		svc := newUserService(t)
		register(t, svc, "alice", "alice@example.com", "111", "secret1", "")
		_, _, refresh, err := svc.Login("alice@example.com", "secret1")
		require.NoError(t, err)

		access, err := svc.Refresh(refresh)

		require.NoError(t, err)
		assert.NotEmpty(t, access)
	})

	t.Run("should reject an access token used as refresh token", func(t *testing.T) {
		svc := newUserService(t)
		register(t, svc, "alice", "alice@example.com", "111", "secret1", "")
		_, access, _, err := svc.Login("alice@example.com", "secret1")
		require.NoError(t, err)

		_, err = svc.Refresh(access)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAuthentication)
	})

	t.Run("should reject a refresh token whose subject no longer exists", func(t *testing.T) {
		svc := newUserService(t)
		user := register(t, svc, "alice", "alice@example.com", "111", "secret1", "")
		_, _, refresh, err := svc.Login("alice@example.com", "secret1")
		require.NoError(t, err)
		require.NoError(t, svc.db.Delete(&models.User{}, user.ID).Error)

		_, err = svc.Refresh(refresh)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAuthentication)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("non-admin cannot update another user", func(t *testing.T) {
		svc := newUserService(t)
		alice := register(t, svc, "alice", "alice@example.com", "111", "secret1", "")
		bob := register(t, svc, "bob", "bob@example.com", "222", "secret2", "")

		_, _, err := svc.UpdateProfile(alice.ID, ProfilePatch{Address: "new"}, bob.ID, bob.Role)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAuthorization)
	})

	t.Run("admin can update any user", func(t *testing.T) {
		svc := newUserService(t)
		alice := register(t, svc, "alice", "alice@example.com", "111", "secret1", "")
		admin := register(t, svc, "root", "root@example.com", "999", "secret9", models.RoleAdmin)

		updated, access, err := svc.UpdateProfile(alice.ID, ProfilePatch{Address: "42 Shelf St"}, admin.ID, admin.Role)

		require.NoError(t, err)
		assert.Equal(t, "42 Shelf St", updated.Address)
		assert.NotEmpty(t, access)
	})

	t.Run("should reject email already used by another user", func(t *testing.T) {
		svc := newUserService(t)
		alice := register(t, svc, "alice", "alice@example.com", "111", "secret1", "")
		register(t, svc, "bob", "bob@example.com", "222", "secret2", "")

		_, _, err := svc.UpdateProfile(alice.ID, ProfilePatch{Email: "bob@example.com"}, alice.ID, alice.Role)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("keeping your own email is not a conflict", func(t *testing.T) {
		svc := newUserService(t)
		alice := register(t, svc, "alice", "alice@example.com", "111", "secret1", "")

		updated, _, err := svc.UpdateProfile(alice.ID, ProfilePatch{Email: "alice@example.com"}, alice.ID, alice.Role)

		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", updated.Email)
	})

	t.Run("blank password is not rehashed", func(t *testing.T) {
		svc := newUserService(t)
		alice := register(t, svc, "alice", "alice@example.com", "111", "secret1", "")
		before := alice.PasswordHash

		updated, _, err := svc.UpdateProfile(alice.ID, ProfilePatch{Password: "   "}, alice.ID, alice.Role)

		require.NoError(t, err)
		assert.Equal(t, before, updated.PasswordHash)
	})

	t.Run("new password is rehashed", func(t *testing.T) {
		svc := newUserService(t)
		alice := register(t, svc, "alice", "alice@example.com", "111", "secret1", "")

		updated, _, err := svc.UpdateProfile(alice.ID, ProfilePatch{Password: "newsecret"}, alice.ID, alice.Role)

		require.NoError(t, err)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newsecret")))
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("non-admin is forbidden", func(t *testing.T) {
		svc := newUserService(t)
		alice := register(t, svc, "alice", "alice@example.com", "111", "secret1", "")

		err := svc.Delete(alice.ID, models.RoleCustomer)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAuthorization)
	})

	t.Run("admin delete removes user and unassigned cart items", func(t *testing.T) {
		svc := newUserService(t)
		alice := register(t, svc, "alice", "alice@example.com", "111", "secret1", "")
		book := seedBook(t, svc.db, "Dune", 10)
		require.NoError(t, svc.db.Create(&models.CartItem{UserID: alice.ID, BookID: book.ID, Quantity: 1}).Error)

		require.NoError(t, svc.Delete(alice.ID, models.RoleAdmin))

		_, err := svc.FindByID(alice.ID)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		var count int64
		svc.db.Model(&models.CartItem{}).Where("user_id = ?", alice.ID).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("deleting a missing user is not found", func(t *testing.T) {
		svc := newUserService(t)

		err := svc.Delete(12345, models.RoleAdmin)

		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}
