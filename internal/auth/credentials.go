// Package auth holds the fixed credential table, the signed auth-token and
// the cookie helpers shared by the login handlers and the admin guards.
package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Roles allowed into the administrative surface.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Profile is the public view of an account that can sign in.
type Profile struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// CanManage reports whether the profile may use the admin surface.
func CanManage(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}

type account struct {
	profile Profile
	hash    []byte
}

// Directory is the fixed credential table. Passwords are held only as
// bcrypt hashes.
type Directory struct {
	byEmail map[string]account
	byID    map[string]Profile
}

// Seed is one entry of the credential table.
type Seed struct {
	Profile  Profile
	Password string
}

// DefaultSeeds returns the built-in admin and editor accounts.
func DefaultSeeds() []Seed {
	return []Seed{
		{
			Profile: Profile{
				ID:     "1",
				Email:  "admin@modernblog.com",
				Name:   "Admin User",
				Role:   RoleAdmin,
				Avatar: "/images/caspar-camille-rubin-0qvBNep1Y04-unsplash.webp",
			},
			Password: "admin123",
		},
		{
			Profile: Profile{
				ID:     "2",
				Email:  "editor@modernblog.com",
				Name:   "Editor User",
				Role:   RoleEditor,
				Avatar: "/images/markus-spiske-MI9-PY5cyNs-unsplash.webp",
			},
			Password: "editor123",
		},
	}
}

// NewDirectory hashes every seed password with cost.
func NewDirectory(seeds []Seed, cost int) (*Directory, error) {
	d := &Directory{
		byEmail: make(map[string]account, len(seeds)),
		byID:    make(map[string]Profile, len(seeds)),
	}
	for _, s := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), cost)
		if err != nil {
			return nil, err
		}
		d.byEmail[strings.ToLower(s.Profile.Email)] = account{profile: s.Profile, hash: hash}
		d.byID[s.Profile.ID] = s.Profile
	}
	return d, nil
}

// Authenticate checks email and password against the table.
func (d *Directory) Authenticate(email, password string) (Profile, error) {
	acc, ok := d.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return Profile{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		return Profile{}, ErrInvalidCredentials
	}
	return acc.profile, nil
}

// Lookup returns the profile with id.
func (d *Directory) Lookup(id string) (Profile, error) {
	p, ok := d.byID[id]
	if !ok {
		return Profile{}, ErrUserNotFound
	}
	return p, nil
}
