package domain

import (
	"github.com/healthdesk/healthinfo/internal/errors"
)

// ErrClientNotFound indicates the requested client does not exist.
var ErrClientNotFound = errors.Wrap(errors.ErrNotFound, "client not found")
