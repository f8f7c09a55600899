package config

import "errors"

// ErrInvalid wraps every validation failure returned by Validate and Load.
var ErrInvalid = errors.New("config: invalid configuration")
