package client

import (
	"errors"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = common.ErrorUnauthorized
)
