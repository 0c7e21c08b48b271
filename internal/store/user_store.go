package store

import "github.com/nhle/tasktrack/internal/model"

const userHeader = "Code,Name,Email,Password"

const userFieldCount = 4

// CSVUserStore reads user records from a header-first delimited seed file.
// It is read-only: users are authored out-of-band.
type CSVUserStore struct {
	path string
}

// NewCSVUserStore returns a user store backed by the file at path.
func NewCSVUserStore(path string) *CSVUserStore {
	return &CSVUserStore{path: path}
}

// findAll reads every well-formed user row in file order.
func (s *CSVUserStore) findAll() ([]model.User, error) {
	var users []model.User
	for _, row := range readRows(s.path, userFieldCount) {
		code, ok := atoi(row[0])
		if !ok {
			continue
		}
		users = append(users, model.User{
			Code:     code,
			Name:     row[1],
			Email:    row[2],
			Password: row[3],
		})
	}
	return users, nil
}

// FindByCode scans for the user with the given code. When the file holds
// duplicate codes the last row in scan order wins; absence is (nil, nil).
func (s *CSVUserStore) FindByCode(code int) (*model.User, error) {
	users, _ := s.findAll()

	var found *model.User
	for i := range users {
		if users[i].Code == code {
			found = &users[i]
		}
	}
	return found, nil
}

// FindByCredentials scans for the user whose email and password both match
// exactly (case-sensitive). The scan does not short-circuit, so with
// duplicate credentials the last matching row wins; well-formed seed data
// never has duplicates, and callers must not rely on the tie-break.
func (s *CSVUserStore) FindByCredentials(email, password string) (*model.User, error) {
	users, _ := s.findAll()

	var found *model.User
	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			found = &users[i]
		}
	}
	return found, nil
}
