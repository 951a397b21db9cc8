package flatfile

import (
	"context"
	"fmt"

	"webstore/internal/domain"
)

// UsersResource is the name of the bootstrap user file.
const UsersResource = "users.csv"

// UserFile reads bootstrap users from a Store. Row layout:
// id, email, first name, last name, password hash or plaintext.
type UserFile struct {
	store *Store
}

var _ domain.UserSeed = (*UserFile)(nil)

// NewUserFile creates a seed source backed by store.
func NewUserFile(store *Store) *UserFile {
	return &UserFile{store: store}
}

// Users returns the seed users in file order.
func (f *UserFile) Users(ctx context.Context) ([]domain.User, error) {
	rows, found, err := f.store.Load(UsersResource)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.Errorf(domain.ErrNotFound, "User file not found: %s", UsersResource)
	}

	users := make([]domain.User, 0, len(rows))
	for i, row := range rows {
		if len(row) < 5 {
			return nil, fmt.Errorf("%s row %d: expected 5 fields, got %d", UsersResource, i+1, len(row))
		}
		if row[0] == "" || row[1] == "" {
			return nil, fmt.Errorf("%s row %d: empty id or email", UsersResource, i+1)
		}
		users = append(users, domain.User{
			ID:           row[0],
			Email:        row[1],
			FirstName:    row[2],
			LastName:     row[3],
			PasswordHash: row[4],
		})
	}
	return users, nil
}
