package tui

type state int

const (
	browseState state = iota
	filterState
	errorState
)
