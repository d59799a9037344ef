package dto

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

type DispatchRequest struct {
	LeadIDs  []string `json:"lead_ids"`
	Kind     string   `json:"kind"`
	Template string   `json:"template"`
}
