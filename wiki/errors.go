package wiki

import "errors"

var ErrUsernameTaken = errors.New("username already in use")
var ErrEmailTaken = errors.New("email already in use")
var ErrPasswordTooShort = errors.New("password too short")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrUsernameNotFound = errors.New("username not found")
var ErrBadUsername = errors.New("username must only contain letters, numbers, -, or _")
var ErrEmptyUsername = errors.New("username cannot be empty")
var ErrInvalidTitle = errors.New("invalid page title")
var ErrPageNotFound = errors.New("page not found")
var ErrPageExists = errors.New("a page with that title already exists")
var ErrRevisionNotFound = errors.New("revision not found")
var ErrAdminRequired = errors.New("administrator access required")
