package searchhook

import sherrors "github.com/nonibytes/searchhook/searchhook/errors"

// Re-export error types so callers need a single import
type Error = sherrors.Error
type ErrorKind = sherrors.ErrorKind

const (
	ErrMalformedKey        = sherrors.ErrMalformedKey
	ErrUnknownOperatorPair = sherrors.ErrUnknownOperatorPair
	ErrOperandArity        = sherrors.ErrOperandArity
	ErrUnresolvedPath      = sherrors.ErrUnresolvedPath
	ErrSchema              = sherrors.ErrSchema
	ErrSQL                 = sherrors.ErrSQL
	ErrIO                  = sherrors.ErrIO
	ErrConfig              = sherrors.ErrConfig
)

func IsKind(err error, kind ErrorKind) bool { return sherrors.IsKind(err, kind) }

func Wrap(kind ErrorKind, msg string, cause error) *Error { return sherrors.Wrap(kind, msg, cause) }
