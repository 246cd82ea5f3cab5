package dto

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Department string `json:"department" binding:"required"`
}

// UserFilterRequest represents admin user-listing filters
type UserFilterRequest struct {
	Role       string `form:"role"`
	Department string `form:"department"`
	Search     string `form:"search"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}
