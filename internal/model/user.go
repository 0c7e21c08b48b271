package model

// User is an identity record. Users are authored out-of-band as seed data;
// nothing in the application creates, updates, or deletes them.
type User struct {
	// Code is the unique positive integer identifying this user.
	Code int `json:"code" db:"code"`

	// Name is the display name shown in task listings.
	Name string `json:"name" db:"name"`

	// Email and Password form the login credential pair. Both are stored
	// and compared as plain text, matching the seed file format.
	Email    string `json:"email" db:"email"`
	Password string `json:"password" db:"password"`
}
