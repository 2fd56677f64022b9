package rbtree

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors returned by Insert.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDuplicateKey    = errors.New("duplicate key")
)

// DuplicateKeyError is returned by Insert when the key is already present
// and the tree rejects duplicates. It matches ErrDuplicateKey.
type DuplicateKeyError[K any] struct {
	Key K
}

func (e *DuplicateKeyError[K]) Error() string {
	return fmt.Sprintf("duplicate key %v", e.Key)
}

func (e *DuplicateKeyError[K]) Is(target error) bool {
	return target == ErrDuplicateKey
}
