package dto

type RegisterInput struct {
	Name        string `json:"name" binding:"required,min=4,max=15"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
}
