package services

import (
	"context"
	"errors"

	"socialfeed/app/blobs"
	"socialfeed/app/logging"
	"socialfeed/app/models"
	"socialfeed/app/repositories"
)

// AuthResult is returned by registration and login.
type AuthResult struct {
	Token string
	User  *models.User
}

// UserService handles accounts: registration, login and profile upkeep.
type UserService struct {
	users          repositories.UserRepository
	credentials    *CredentialService
	blobs          blobs.Store
	defaultPicture string
	log            logging.Logger
}

// NewUserService creates a new UserService. An empty defaultPicture falls
// back to models.DefaultProfilePicture.
func NewUserService(
	users repositories.UserRepository,
	credentials *CredentialService,
	blobStore blobs.Store,
	defaultPicture string,
) *UserService {
	return &UserService{
		users:          users,
		credentials:    credentials,
		blobs:          blobStore,
		defaultPicture: defaultPicture,
		log:            logging.GetLogger("services.users"),
	}
}

// Register creates an account and signs the caller in.
func (s *UserService) Register(ctx context.Context, reg *models.Registration) (result *AuthResult, err error) {
	defer func() {
		if err != nil {
			s.log.WarnContext(ctx, "registration failed", "error", err)
		} else {
			s.log.InfoContext(ctx, "user registered", "user_id", result.User.ID)
		}
	}()

	if err := reg.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	hash, err := s.credentials.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       reg.Username,
		Email:          reg.Email,
		Password:       hash,
		ProfilePicture: s.defaultPicture,
	}
	user.BeforeCreate()

	if err := user.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeError("create user", err, ErrUserNotFound)
	}

	return s.signIn(user)
}

// Login verifies the password for email and issues a token.
func (s *UserService) Login(ctx context.Context, email, password string) (result *AuthResult, err error) {
	defer func() {
		if err != nil {
			s.log.WarnContext(ctx, "login failed", "error", err)
		}
	}()

	user, err := s.users.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		return nil, storeError("get user", err, ErrUserNotFound)
	}

	if err := s.credentials.VerifyPassword(user.Password, password); err != nil {
		return nil, err
	}

	return s.signIn(user)
}

// Profile returns the caller's own account.
func (s *UserService) Profile(ctx context.Context, identity Identity) (*models.User, error) {
	return s.Get(ctx, identity.UserID)
}

// UpdateProfile applies the {username, email, bio} allow-list.
func (s *UserService) UpdateProfile(ctx context.Context, identity Identity, patch *models.ProfilePatch) (*models.User, error) {
	if err := patch.Validate(); err != nil {
		return nil, invalidArgument(err)
	}
	return s.update(ctx, identity.UserID, patch.Apply)
}

// SetProfilePicture uploads image and points the caller's profile at it.
func (s *UserService) SetProfilePicture(ctx context.Context, identity Identity, image *Upload) (*models.User, error) {
	if image == nil || len(image.Data) == 0 {
		return nil, ErrImageRequired
	}

	url, err := s.blobs.Put(ctx, image.Data, image.Filename)
	switch {
	case errors.Is(err, blobs.ErrNotImage), errors.Is(err, blobs.ErrEmpty):
		return nil, invalidArgument(err)
	case err != nil:
		return nil, dependencyFailure("upload profile picture", err)
	}

	return s.update(ctx, identity.UserID, func(user *models.User) {
		user.ProfilePicture = url
	})
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, dependencyFailure("list users", err)
	}
	return users, nil
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError("get user", err, ErrUserNotFound)
	}
	return user, nil
}

// UpdateAccount applies the {username, email} allow-list to the caller's
// own account.
func (s *UserService) UpdateAccount(ctx context.Context, identity Identity, userID string, patch models.AccountPatch) (*models.User, error) {
	if identity.UserID != userID {
		return nil, ErrNotAccountOwner
	}
	return s.UpdateProfile(ctx, identity, patch.Profile())
}

// DeleteAccount removes the caller's own account. Posts and comments are
// kept.
func (s *UserService) DeleteAccount(ctx context.Context, identity Identity, userID string) (err error) {
	defer func() {
		if err != nil {
			s.log.WarnContext(ctx, "delete account failed", "user_id", userID, "error", err)
		} else {
			s.log.InfoContext(ctx, "account deleted", "user_id", userID)
		}
	}()

	if identity.UserID != userID {
		return ErrNotAccountOwner
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return storeError("delete user", err, ErrUserNotFound)
	}
	return nil
}

func (s *UserService) update(ctx context.Context, userID string, change func(*models.User)) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError("get user", err, ErrUserNotFound)
	}

	change(user)
	if err := user.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, storeError("update user", err, ErrUserNotFound)
	}
	return user, nil
}

func (s *UserService) signIn(user *models.User) (*AuthResult, error) {
	token, err := s.credentials.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
