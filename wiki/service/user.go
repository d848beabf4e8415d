package service

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/larkwiki/larkwiki/wiki"
	"github.com/larkwiki/larkwiki/wiki/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserService defines the interface for user management operations.
type UserService interface {
	// PostUser creates a new user after validation.
	PostUser(user *wiki.User) error

	// CheckUserPassword verifies a user's password.
	CheckUserPassword(user *wiki.User) error

	// GetUserByScreenName retrieves a user by their screen name.
	GetUserByScreenName(screenname string) (*wiki.User, error)

	// TalkPageExists reports whether a user's talk page has been created.
	TalkPageExists(screenname string) (bool, error)
}

// userService is the default implementation of UserService.
type userService struct {
	repo                  repository.UserRepository
	history               repository.HistoryRepository
	minimumPasswordLength int
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, history repository.HistoryRepository, minimumPasswordLength int) UserService {
	return &userService{
		repo:                  repo,
		history:               history,
		minimumPasswordLength: minimumPasswordLength,
	}
}

// PostUser creates a new user after validation.
// If the newly created user has ID 1, they are automatically promoted to admin.
func (s *userService) PostUser(user *wiki.User) error {
	if len(user.ScreenName) == 0 {
		return wiki.ErrEmptyUsername
	}

	matched, err := regexp.MatchString(`^[\p{L}0-9-_]+$`, user.ScreenName)
	if err != nil {
		return err
	}

	if !matched {
		return wiki.ErrBadUsername
	}

	if len(user.RawPassword) < s.minimumPasswordLength {
		return fmt.Errorf("%w (must be %d characters long)", wiki.ErrPasswordTooShort, s.minimumPasswordLength)
	}

	err = user.SetPasswordHash()
	if err != nil {
		return err
	}

	if err := s.repo.InsertUser(user); err != nil {
		return err
	}

	// Promote first registered user to admin
	if user.ID == 1 {
		if err := s.repo.UpdateUserRole(1, wiki.RoleAdmin); err != nil {
			return err
		}
		user.Role = wiki.RoleAdmin
	}

	return nil
}

// CheckUserPassword verifies a user's password.
func (s *userService) CheckUserPassword(u *wiki.User) error {
	dbUser, err := s.repo.SelectUserByScreenname(u.ScreenName, true)
	if err == sql.ErrNoRows {
		return wiki.ErrUsernameNotFound
	}
	if err != nil {
		return err
	}

	err = bcrypt.CompareHashAndPassword([]byte(dbUser.PasswordHash), []byte(u.RawPassword))
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return wiki.ErrIncorrectPassword
	}

	return err
}

// GetUserByScreenName retrieves a user by their screen name.
func (s *userService) GetUserByScreenName(screenname string) (*wiki.User, error) {
	dbUser, err := s.repo.SelectUserByScreenname(screenname, false)
	if err == sql.ErrNoRows {
		return nil, wiki.ErrUsernameNotFound
	}

	return dbUser, err
}

// TalkPageExists reports whether a user's talk page has been created.
func (s *userService) TalkPageExists(screenname string) (bool, error) {
	talk := wiki.UserTalkTitle(screenname)
	_, err := s.history.SelectPage(talk.Namespace, talk.DBKey())
	if errors.Is(err, wiki.ErrPageNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
