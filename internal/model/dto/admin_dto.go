package dto

// UpdatePlanRequest 修改用户套餐，MonthlyLimit 为 null 或缺省表示不限量
type UpdatePlanRequest struct {
	Role         string `json:"role" binding:"required,oneof=ADMIN PREMIUM FREE"`
	MonthlyLimit *int   `json:"monthly_limit" binding:"omitempty,min=0"`
}
