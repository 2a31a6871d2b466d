package dto

type ExpenseInput struct {
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	Price       string `json:"price" binding:"required"`
	Date        string `json:"expense_date" binding:"required"`
}

type ExpenseOutput struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Date        string `json:"expense_date"`
}
