package store

import (
	"errors"
	"fmt"

	"hotelinfinity/pkg/model"

	"golang.org/x/crypto/bcrypt"
)

const adminUserID = "1"

// AdminAccount is the single credential pair the store accepts. The
// password is held only as a bcrypt hash.
type AdminAccount struct {
	Email        string
	Name         string
	passwordHash []byte
}

// NewAdminAccount hashes password with the given bcrypt cost. A cost of 0
// selects bcrypt.DefaultCost.
func NewAdminAccount(email, password, name string, cost int) (AdminAccount, error) {
	if email == "" || password == "" {
		return AdminAccount{}, errors.New("admin email and password are required")
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return AdminAccount{}, fmt.Errorf("hash admin password: %w", err)
	}
	return AdminAccount{Email: email, Name: name, passwordHash: hash}, nil
}

// Matches reports whether email and password are exactly the admin pair.
func (a AdminAccount) Matches(email, password string) bool {
	if len(a.passwordHash) == 0 || email != a.Email {
		return false
	}
	return bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
}

func (a AdminAccount) User() model.User {
	return model.User{
		ID:    adminUserID,
		Email: a.Email,
		Name:  a.Name,
		Role:  model.RoleAdmin,
	}
}
