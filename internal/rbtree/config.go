package rbtree

import (
	"github.com/sirupsen/logrus"
)

// DuplicatePolicy decides what Insert does with a key that is already present.
type DuplicatePolicy int

const (
	// RejectDuplicates fails the insert with a *DuplicateKeyError.
	RejectDuplicates DuplicatePolicy = iota
	// ReplaceDuplicates overwrites the stored value in place.
	ReplaceDuplicates
)

func (p DuplicatePolicy) String() string {
	switch p {
	case RejectDuplicates:
		return "reject"
	case ReplaceDuplicates:
		return "replace"
	default:
		return "unknown"
	}
}

// Config holds configuration options for a tree.
type Config struct {
	// Policy for keys that are already present
	Duplicates DuplicatePolicy

	// Run Verify after every mutation and panic on a violated invariant
	Verify bool

	// Log every fix-up step at debug level
	Trace bool

	// Logger used for tracing and invariant failures (package logger if nil)
	Logger logrus.FieldLogger
}

// DefaultConfig returns the default tree configuration.
func DefaultConfig() *Config {
	return &Config{
		Duplicates: RejectDuplicates,
	}
}

// Stats counts structural work done by a tree since it was created.
type Stats struct {
	Allocated   int64
	Freed       int64
	Rotations   int64
	InsertCases [numInsertCases]int64 // indexed by InsertCase
	DeleteCases [numDeleteCases]int64 // indexed by DeleteCase
}
