package mcts

import "github.com/pkg/errors"

// Errors returned by the search phases, a failing iteration is skipped
// (or stops the search, for selection) and never reaches SelectMove's caller
var (
	ErrSelection     = errors.New("mcts: selection failed")
	ErrExpansion     = errors.New("mcts: expansion failed")
	ErrSimulation    = errors.New("mcts: simulation failed")
	ErrInternalFault = errors.New("mcts: internal fault")

	ErrSearchExhausted = errors.New("mcts: search finished without expanding the root")
	ErrNoRoot          = errors.New("mcts: tree has no root")
)
