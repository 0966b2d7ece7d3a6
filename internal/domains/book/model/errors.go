package model

import (
	"errors"
	"fmt"
)

const (
	MsgISBNAlreadyExists = "A book with the same ISBN number already exists."
	MsgNoBooks           = "No books exists. Please add some books to the collection"
)

var (
	ErrISBNAlreadyExists = errors.New("ISBN already exists")
	ErrBookNotFound      = errors.New("book not found")
	ErrNoBooks           = errors.New("no books match the request")
)

// MsgBookNotFound - message 404 cho book id
func MsgBookNotFound(id string) string {
	return fmt.Sprintf("Book with ID %s not found", id)
}
