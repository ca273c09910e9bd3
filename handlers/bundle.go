package handlers

// HandlerBundle groups the endpoint handlers registered by routes.
type HandlerBundle struct {
	Attention *AttentionHandler
	Booking   *BookingHandler
	Block     *BlockHandler
	Health    *HealthHandler
}
