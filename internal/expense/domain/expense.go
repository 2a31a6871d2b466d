package domain

import "time"

type Expense struct {
	ID          int64
	UserID      int64
	Description string
	Category    string
	Price       string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
