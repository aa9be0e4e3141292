package dto

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	School    string `json:"school" binding:"required"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token              string `json:"token"`
	StaffID            string `json:"staff_id"`
	Username           string `json:"username"`
	Role               string `json:"role"`
	School             string `json:"school"`
	MustChangePassword bool   `json:"must_change_password"`
}

type StaffDTO struct {
	StaffID   string `json:"staff_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	School    string `json:"school"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type ResetPasswordRequest struct {
	Login string `json:"login" binding:"required"`
}

type ResetPasswordResponse struct {
	StaffID           string `json:"staff_id"`
	TemporaryPassword string `json:"temporary_password"`
}
