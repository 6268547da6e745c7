package store

import "errors"

var (
	ErrEntityNotFound    = errors.New("entity not found")
	ErrCorruptPayload    = errors.New("corrupt entity payload")
	ErrNestedTransaction = errors.New("nested transactions are not supported")
)
