// Package model defines domain entities for the application.
package model

import (
	"strconv"
)

// User is an account keyed by email. Every profile field is optional:
// a user created by the first login has only an email until the profile is saved.
type User struct {
	ID     int64    `json:"id"`
	Email  string   `json:"email"`
	Name   *string  `json:"name"`
	Age    *int     `json:"age"`
	Gender *string  `json:"gender"`
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
	BMI    *float64 `json:"bmi"`
}

// Profile holds the fields written by a profile save.
type Profile struct {
	Name   *string
	Age    *int
	Gender *string
	Height *float64
	Weight *float64
	BMI    *float64
}

// HasProfile reports whether the profile has been completed at least once.
func (u *User) HasProfile() bool {
	return u.Name != nil && *u.Name != ""
}

// ApplyProfile copies p onto u.
func (u *User) ApplyProfile(p Profile) {
	u.Name = p.Name
	u.Age = p.Age
	u.Gender = p.Gender
	u.Height = p.Height
	u.Weight = p.Weight
	u.BMI = p.BMI
}

// CachedUser represents user data stored in a Redis hash.
// Absent optional fields are stored as empty strings.
type CachedUser struct {
	ID     string `redis:"id"`
	Email  string `redis:"email"`
	Name   string `redis:"name"`
	Age    string `redis:"age"`
	Gender string `redis:"gender"`
	Height string `redis:"height"`
	Weight string `redis:"weight"`
	BMI    string `redis:"bmi"`
}

// ToCachedUser converts User to its cache representation.
func (u *User) ToCachedUser() *CachedUser {
	c := &CachedUser{
		ID:    strconv.FormatInt(u.ID, 10),
		Email: u.Email,
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Age != nil {
		c.Age = strconv.Itoa(*u.Age)
	}
	if u.Gender != nil {
		c.Gender = *u.Gender
	}
	c.Height = formatFloat(u.Height)
	c.Weight = formatFloat(u.Weight)
	c.BMI = formatFloat(u.BMI)
	return c
}

// ToUser converts the cache representation back to a User.
// Fields that fail to parse are treated as absent.
func (c *CachedUser) ToUser() *User {
	u := &User{Email: c.Email}
	if id, err := strconv.ParseInt(c.ID, 10, 64); err == nil {
		u.ID = id
	}
	if c.Name != "" {
		name := c.Name
		u.Name = &name
	}
	if c.Age != "" {
		if age, err := strconv.Atoi(c.Age); err == nil {
			u.Age = &age
		}
	}
	if c.Gender != "" {
		gender := c.Gender
		u.Gender = &gender
	}
	u.Height = parseFloat(c.Height)
	u.Weight = parseFloat(c.Weight)
	u.BMI = parseFloat(c.BMI)
	return u
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
