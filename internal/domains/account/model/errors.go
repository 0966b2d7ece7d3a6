package model

import "errors"

// Messages trả về cho client, giữ nguyên wording
const (
	MsgUserExists        = "User with Email or Phone already exists"
	MsgEmailIncorrect    = "Given Email is incorrect"
	MsgPasswordIncorrect = "Given password is incorrect"
)

var (
	ErrUserExists        = errors.New("account with email or phone already exists")
	ErrEmailIncorrect    = errors.New("no active account with the given email")
	ErrPasswordIncorrect = errors.New("password does not match")
)
