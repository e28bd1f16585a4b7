package bracket

import "errors"

var (
	ErrInvalidVote        = errors.New("invalid vote")
	ErrNoActivePair       = errors.New("no active pair")
	ErrInvalidBracketSize = errors.New("invalid bracket size")
	ErrBracketFull        = errors.New("bracket is full")
	ErrDuplicateImage     = errors.New("duplicate image")
	ErrUnknownImage       = errors.New("unknown image")
)
