package reward

import "errors"

var (
	ErrNotFound           = errors.New("reward not found")
	ErrNotActive          = errors.New("reward is not active")
	ErrIneligible         = errors.New("member is not eligible for reward")
	ErrPriceMismatch      = errors.New("expected price does not match current price")
	ErrOutOfStock         = errors.New("reward is out of stock")
	ErrRedemptionNotFound = errors.New("redemption request not found")
	ErrInvalidTransition  = errors.New("invalid redemption status transition")
)
