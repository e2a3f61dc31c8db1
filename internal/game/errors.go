package game

import "errors"

var (
	ErrNoPromotionPending = errors.New("no promotion pending")
	ErrInvalidPromotion   = errors.New("invalid promotion piece")
	ErrPromotionPending   = errors.New("promotion pending")
	ErrIllegalMove        = errors.New("illegal move")
	ErrGameOver           = errors.New("game over")
)
