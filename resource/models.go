// Package resource exposes CRUD-style operations for the three demo
// entities. Each client is a thin composition layer: it builds endpoint
// paths, calls the timed HTTP client, and runs the matching schema validator
// over every element it returns.
package resource

// User mirrors the JSONPlaceholder user record.
type User struct {
	ID       int     `json:"id" validate:"omitempty,min=1"`
	Name     string  `json:"name" validate:"required"`
	Username string  `json:"username" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    string  `json:"phone" validate:"required"`
	Website  string  `json:"website" validate:"required"`
	Address  Address `json:"address"`
	Company  Company `json:"company"`
}

// Address is the nested user address object.
type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     Geo    `json:"geo"`
}

// Geo holds the address coordinates as the backend serves them: strings.
type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// Company is the nested user company object.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}

// Post mirrors the JSONPlaceholder post record.
type Post struct {
	ID     int    `json:"id" validate:"omitempty,min=1"`
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body" validate:"required"`
	UserID int    `json:"userId" validate:"required,min=1"`
}

// Comment mirrors the JSONPlaceholder comment record.
type Comment struct {
	ID     int    `json:"id" validate:"omitempty,min=1"`
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Body   string `json:"body" validate:"required"`
	PostID int    `json:"postId" validate:"required,min=1"`
}
