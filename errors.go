package accounts

import "errors"

// Codec errors. They abort the decoding of the record, and of the whole ledger.
var (
	ErrUnknownType    = errors.New("unknown type")
	ErrMalformedField = errors.New("malformed field")
	ErrMalformedValue = errors.New("malformed value")
	ErrMissingField   = errors.New("missing field")
)

// Ledger errors.
var (
	ErrUnsupportedMoveType = errors.New("unsupported move type")
	ErrUnexpectedRecord    = errors.New("unexpected record")
	ErrEmptyName           = errors.New("empty account name")
	ErrDuplicateName       = errors.New("duplicate account name")
	ErrDuplicateID         = errors.New("duplicate account id")
	ErrNoManagedEndpoint   = errors.New("no managed account in move")
	ErrSeparator           = errors.New("cannot frame accounts")
)
