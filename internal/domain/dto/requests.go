package dto

// Request bodies. Path parameters are bound through the param tag.

type IDParam struct {
	ID int64 `param:"id" validate:"required"`
}

type GroupIDParam struct {
	GroupID int64 `param:"groupId" validate:"required"`
}

type FacilityGroupRequest struct {
	ID            int64  `param:"id" json:"-"`
	Name          string `json:"name" validate:"required"`
	BillingType   string `json:"billingType" validate:"required"`
	BillingDay    *int   `json:"billingDay"`
	StatusGroupID *int64 `json:"statusGroupId"`
}

type FacilityRequest struct {
	ID      int64  `param:"id" json:"-"`
	Name    string `json:"name" validate:"required"`
	GroupID int64  `json:"groupId" validate:"required"`
}

type BillingRecordRequest struct {
	FacilityID   *int64  `json:"facilityId" validate:"required"`
	Cycle        *int    `json:"cycle" validate:"required"`
	BillingDate  *string `json:"billingDate"`
	FromDate     *string `json:"fromDate"`
	ThroughDate  *string `json:"throughDate"`
	BilledAmount *string `json:"billedAmount"`
	PaidAmount   *string `json:"paidAmount"`
	PaidDate     *string `json:"paidDate"`
	StatusID     *int64  `json:"statusId"`
}

type CustomDateItem struct {
	Date          string  `json:"date" validate:"required"`
	Frequency     string  `json:"frequency"`
	CustomFrom    *string `json:"customFrom"`
	CustomThrough *string `json:"customThrough"`
}

type CustomDatesRequest struct {
	GroupID     int64            `json:"groupId" validate:"required"`
	CustomDates []CustomDateItem `json:"customDates" validate:"dive"`
}

type StatusGroupRequest struct {
	ID        int64  `param:"id" json:"-"`
	Name      string `json:"name" validate:"required"`
	IsDefault *bool  `json:"isDefault"`
}

type StatusRequest struct {
	ID            int64  `param:"id" json:"-"`
	StatusGroupID *int64 `json:"statusGroupId"`
	// LegacyGroupID is the field name older frontends send.
	LegacyGroupID *int64 `json:"group_id"`
	Name          string `json:"name" validate:"required"`
	Color         string `json:"color" validate:"required"`
	SortOrder     int    `json:"sortOrder"`
}

// GroupID resolves the status group a status belongs to, defaulting to 1.
func (r *StatusRequest) GroupID() int64 {
	switch {
	case r.StatusGroupID != nil:
		return *r.StatusGroupID
	case r.LegacyGroupID != nil:
		return *r.LegacyGroupID
	default:
		return 1
	}
}
