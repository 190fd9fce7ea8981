package leave

// ===============================
// Day-off categories and statuses
// ===============================

type Category string

const (
	CategoryLeave   Category = "leave"
	CategorySick    Category = "sick"
	CategoryHalfDay Category = "half_day"
	CategoryOther   Category = "other"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func IsValidCategory(c Category) bool {
	switch c {
	case CategoryLeave, CategorySick, CategoryHalfDay, CategoryOther:
		return true
	}
	return false
}

// BalanceCategory is a category a balance can be queried for. Half-day
// requests count against the annual leave balance, so "half_day" is not
// itself a balance category.
func IsBalanceCategory(c Category) bool {
	switch c {
	case CategoryLeave, CategorySick, CategoryOther:
		return true
	}
	return false
}
