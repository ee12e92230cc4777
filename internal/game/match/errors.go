package match

import "errors"

var ErrSeatsFull = errors.New("match already has four seats")
var ErrMatchStarted = errors.New("match already started")
var ErrMatchFinished = errors.New("match already finished")
var ErrInvalidFormat = errors.New("invalid move format")
var ErrInvalidSuitLetter = errors.New("invalid suit letter")
var ErrCardNotInHand = errors.New("card not in hand")
var ErrInsufficientCards = errors.New("not enough cards to deal")
var ErrBadSeat = errors.New("invalid seat index")
