package adjustment

type PostAdjustmentRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	TxnDate    string `json:"txn_date" binding:"required"`
	Amount     int64  `json:"amount" binding:"required"`
	TxnType    string `json:"txn_type" binding:"required,oneof=bonus extra fine"`
	Reason     string `json:"reason"`
}

type AdjustmentResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	TxnDate    string `json:"txn_date"`
	Amount     int64  `json:"amount"`
	TxnType    string `json:"txn_type"`
	Reason     string `json:"reason"`
	CreatedAt  string `json:"created_at"`
}
