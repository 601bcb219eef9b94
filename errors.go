package lsys

import "errors"

var (
	// ErrMalformedRule is matched by errors reporting a rule that does not
	// follow the "<letter> -> <body>" form.
	ErrMalformedRule = errors.New("malformed rule")

	// ErrUnbalancedStack is matched by errors reporting a pop on an empty
	// state stack.
	ErrUnbalancedStack = errors.New("unbalanced stack: pop without matching push")

	// ErrUnclosedBranch is returned by strict interpretation runs ending with
	// saved states still on the stack.
	ErrUnclosedBranch = errors.New("unclosed branch: push without matching pop")

	// ErrLengthExceeded is returned when a predicted word length is over the
	// ceiling set by the caller.
	ErrLengthExceeded = errors.New("word length exceeds ceiling")
)
