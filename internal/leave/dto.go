package leave

type SubmitLeaveDTO struct {
	LeaveType string `json:"leave_type" validate:"required,max=50"`
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date" validate:"required,date"`
	Reason    string `json:"reason" validate:"required,max=1000"`
}

type UpdateStatusDTO struct {
	Status string `json:"status" validate:"required,leave_decision"`
}
