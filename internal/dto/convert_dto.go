package dto

// ConvertRequest defines the query parameters for a conversion.
// Precision is optional; -1 lets the service apply its default.
type ConvertRequest struct {
	Amount    string `form:"amount" binding:"required"`
	From      string `form:"from" binding:"required,currencycode"`
	To        string `form:"to" binding:"required,currencycode"`
	Precision int32  `form:"precision,default=-1"`
}

// ConvertResponse defines the data returned for a conversion.
type ConvertResponse struct {
	Amount string `json:"amount"`
	From   string `json:"from"`
	To     string `json:"to"`
	Result string `json:"result"`
}
