package persistence

import (
	"context"

	"github.com/sportxbet/tipstore/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data
type UserRepository interface {
	// GetByID retrieves a user by id
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByIDForUpdate retrieves a user by id with a row lock.
	// Only meaningful inside a unit-of-work transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.User, error)

	// GetByEmail retrieves a user by login email
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has the given email
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// GetByTelegramID retrieves a user by linked Telegram account
	//
	// Possible errors:
	// - ErrUserNotFound: If no user is linked to the Telegram id
	GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error)

	// Create creates a new user
	//
	// Possible errors:
	// - ErrDuplicateUser: If a user with the same email already exists
	Create(ctx context.Context, user *entity.User) error

	// Update persists user information including the balance
	//
	// Possible errors:
	// - ErrUserNotFound: If the user doesn't exist
	Update(ctx context.Context, user *entity.User) error
}
