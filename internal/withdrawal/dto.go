package withdrawal

type WithdrawRequest struct {
	Amount int64 `json:"amount"`
}
