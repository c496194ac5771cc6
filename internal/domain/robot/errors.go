package robot

import "errors"

var ErrStateNotFound = errors.New("robot state not initialized")
