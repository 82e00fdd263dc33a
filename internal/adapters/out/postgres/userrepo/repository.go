// Package userrepo reads the users table maintained by the account layer.
package userrepo

import (
	"context"
	"fmt"

	"ordertrack/internal/adapters/out/postgres/store"
	"ordertrack/internal/core/ports"
	"ordertrack/internal/pkg/errs"
)

var _ ports.UserDirectory = (*Directory)(nil)

const (
	RoleAdmin     = "admin"
	RoleRequester = "requester"
)

// UserDTO is one row of users. Only the fields needed to address email are mapped.
type UserDTO struct {
	ID     string `gorm:"primaryKey;size:64"`
	Email  string `gorm:"size:255;not null"`
	Role   string `gorm:"size:16;index;not null"`
	Active bool   `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

type Directory struct {
	store *store.RecordStore
	users store.Table[UserDTO]
}

func NewDirectory(recordStore *store.RecordStore) *Directory {
	return &Directory{
		store: recordStore,
		users: store.NewTable[UserDTO]("id"),
	}
}

func (d *Directory) ActiveAdminEmails(ctx context.Context) ([]string, error) {
	h, err := d.store.Connect(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := d.users.Rows(ctx, h, store.Where{"role": RoleAdmin, "active": true}, "id")
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(rows))
	for _, u := range rows {
		if u.Email != "" {
			emails = append(emails, u.Email)
		}
	}
	return emails, nil
}

// EmailOf returns the address of an active user. Inactive users are reported as not found.
func (d *Directory) EmailOf(ctx context.Context, userID string) (string, error) {
	h, err := d.store.Connect(ctx)
	if err != nil {
		return "", err
	}

	u, err := d.users.Get(ctx, h, userID)
	if err != nil {
		return "", err
	}
	if !u.Active || u.Email == "" {
		return "", errs.NewObjectNotFoundErrorWithCause("user", userID, fmt.Errorf("user %s is inactive", userID))
	}
	return u.Email, nil
}

// Add registers a user. The account layer owns users; this exists for seeding and tests.
func (d *Directory) Add(ctx context.Context, u UserDTO) error {
	h, err := d.store.Connect(ctx)
	if err != nil {
		return err
	}
	return d.users.Append(ctx, h, &u)
}
