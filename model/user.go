package model

import (
	"context"
	"fmt"

	"github.com/joblyhq/jobly-api/auth"
	"github.com/joblyhq/jobly-api/config"
	"github.com/joblyhq/jobly-api/db"
	"github.com/joblyhq/jobly-api/log"
	e "github.com/joblyhq/jobly-api/rest/errors"
)

// MsgInvalidCredentials is returned for an unknown username as well as a wrong password.
const MsgInvalidCredentials = "Invalid username/password"

type User struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}

type NewUser struct {
	Username  string `json:"username" validate:"required,max=25"`
	Password  string `json:"password" validate:"required,min=5,max=72"`
	FirstName string `json:"firstName" validate:"required,max=30"`
	LastName  string `json:"lastName" validate:"required,max=30"`
	Email     string `json:"email" validate:"required,email,max=60"`
	IsAdmin   bool   `json:"isAdmin"`
}

const userColumns = `username, first_name AS "firstName", last_name AS "lastName", email, is_admin AS "isAdmin"`

var (
	userDuplicateQuery = db.Query(`SELECT username FROM users WHERE username = :username`)
	userInsertQuery    = db.Query(`INSERT INTO users (username, password, first_name, last_name, email, is_admin)
VALUES (:username, :password, :firstName, :lastName, :email, :isAdmin)
RETURNING ` + userColumns)
	userLoginQuery  = db.Query(`SELECT ` + userColumns + `, password FROM users WHERE username = :username`)
	userGetQuery    = db.Query(`SELECT ` + userColumns + ` FROM users WHERE username = :username`)
	userListQuery   = `SELECT ` + userColumns + ` FROM users ORDER BY username`
	userUpdateTail  = db.Query(`WHERE username = :username RETURNING ` + userColumns)
	userDeleteQuery = db.Query(`DELETE FROM users WHERE username = :username RETURNING username`)
	userUpdatable   = map[string]bool{"firstName": true, "lastName": true, "password": true, "email": true}
)

// UserStore reads and writes users. Passwords are stored as bcrypt hashes and never returned.
type UserStore struct {
	db         *db.Db
	columns    db.ColumnNameMap
	bcryptCost int
	logger     log.Logger
}

func NewUserStore(database *db.Db, cfg config.Config) *UserStore {
	return &UserStore{
		db:         database,
		columns:    db.NewColumnNameMap(cfg.Naming(), "firstName", "lastName", "password", "email"),
		bcryptCost: cfg.BcryptCost(),
		logger:     cfg.Logger(),
	}
}

// Authenticate returns the user when password matches, an AuthenticationError otherwise.
func (s *UserStore) Authenticate(ctx context.Context, username string, password string) (*User, error) {
	query, values, err := userLoginQuery.Bind(db.Args{"username": username})
	if err != nil {
		return nil, err
	}
	row, err := s.db.SelectOne(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, e.NewAuthenticationError(MsgInvalidCredentials)
	}

	hashed, _ := row["password"].(string)
	if !auth.ComparePassword(hashed, password) {
		s.logger.Debug("password mismatch", "username", username)
		return nil, e.NewAuthenticationError(MsgInvalidCredentials)
	}
	return toUser(row)
}

// Register adds a user. A username that is already taken is a ValidationError.
func (s *UserStore) Register(ctx context.Context, user NewUser) (*User, error) {
	query, values, err := userDuplicateQuery.Bind(db.Args{"username": user.Username})
	if err != nil {
		return nil, err
	}
	existing, err := s.db.SelectOne(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, e.NewValidationError(fmt.Sprintf("Duplicate username: %s", user.Username))
	}

	hashed, err := auth.HashPassword(user.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	query, values, err = userInsertQuery.Bind(db.Args{
		"username":  user.Username,
		"password":  hashed,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"isAdmin":   user.IsAdmin,
	})
	if err != nil {
		return nil, err
	}
	row, err := s.db.SelectOne(ctx, query, values...)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, e.NewValidationError(fmt.Sprintf("Duplicate username: %s", user.Username))
		}
		return nil, err
	}

	s.logger.Info("user registered", "username", user.Username, "isAdmin", user.IsAdmin)
	return toUser(row)
}

// FindAll returns every user ordered by username.
func (s *UserStore) FindAll(ctx context.Context) ([]User, error) {
	rows, err := s.db.Select(ctx, userListQuery)
	if err != nil {
		return nil, err
	}

	users := make([]User, 0, len(rows))
	for _, row := range rows {
		user, err := toUser(row)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func (s *UserStore) Get(ctx context.Context, username string) (*User, error) {
	query, values, err := userGetQuery.Bind(db.Args{"username": username})
	if err != nil {
		return nil, err
	}
	row, err := s.db.SelectOne(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, e.NewNotFoundError(fmt.Sprintf("No user: %s", username))
	}
	return toUser(row)
}

// Update changes the attributes listed in spec, hashing a new password.
func (s *UserStore) Update(ctx context.Context, username string, spec db.UpdateSpec) (*User, error) {
	if err := checkAttributes(spec, userUpdatable); err != nil {
		return nil, err
	}
	if value, ok := spec.Get("password"); ok {
		plain, ok := value.(string)
		if !ok {
			return nil, e.NewValidationError("password must be a string")
		}
		hashed, err := auth.HashPassword(plain, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		spec = spec.Set("password", hashed)
	}

	query, values, err := update(spec, s.columns, "users", userUpdateTail, db.Args{"username": username})
	if err != nil {
		return nil, err
	}
	row, err := s.db.SelectOne(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, e.NewNotFoundError(fmt.Sprintf("No user: %s", username))
	}
	return toUser(row)
}

func (s *UserStore) Remove(ctx context.Context, username string) error {
	query, values, err := userDeleteQuery.Bind(db.Args{"username": username})
	if err != nil {
		return err
	}
	row, err := s.db.SelectOne(ctx, query, values...)
	if err != nil {
		return err
	}
	if row == nil {
		return e.NewNotFoundError(fmt.Sprintf("No user: %s", username))
	}

	s.logger.Info("user removed", "username", username)
	return nil
}

func toUser(row map[string]interface{}) (*User, error) {
	var user User
	if err := decodeRow(row, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
