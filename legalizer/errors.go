package legalizer

import "errors"

// ErrLegalization is returned when the Tetris pass fails to place every
// movable Block after exhausting its configured flip budget (spec §7
// LegalizationError).
var ErrLegalization = errors.New("legalizer: failed to legalize placement within flip budget")
