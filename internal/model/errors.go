package model

import "errors"

var ErrNoRecord = errors.New("no record")
var ErrAlreadyExists = errors.New("entity already exists")
var ErrPermission = errors.New("permission denied")
var ErrValidation = errors.New("validation failed")
var ErrAuthentication = errors.New("invalid username or password")
