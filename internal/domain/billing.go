package domain

import "time"

// Struct tags are the single place where storage columns (db) are paired with
// wire fields (json). Fields tagged db:"-" are filled from child queries.

type StatusGroup struct {
	ID        int64            `db:"id" json:"id"`
	Name      string           `db:"name" json:"name"`
	IsDefault bool             `db:"is_default" json:"isDefault"`
	Statuses  []*BillingStatus `db:"-" json:"statuses"`
}

// StatusGroupUpdate renames a status group. IsDefault is changed only when set.
type StatusGroupUpdate struct {
	ID        int64
	Name      string
	IsDefault *bool
}

type BillingStatus struct {
	ID            int64  `db:"id" json:"id"`
	StatusGroupID int64  `db:"status_group_id" json:"statusGroupId"`
	Name          string `db:"name" json:"name"`
	Color         string `db:"color" json:"color"`
	SortOrder     int    `db:"sort_order" json:"sortOrder"`
	// GroupName is only selected by the cross-group status listing.
	GroupName string `db:"group_name" json:"groupName,omitempty"`
}

type FacilityGroup struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	BillingType   string    `db:"billing_type" json:"billingType"`
	BillingDay    *int      `db:"billing_day" json:"billingDay"`
	StatusGroupID int64     `db:"status_group_id" json:"statusGroupId"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`

	Facilities  []*Facility      `db:"-" json:"facilities"`
	Statuses    []*BillingStatus `db:"-" json:"statuses"`
	CustomDates []*CustomDate    `db:"-" json:"customDates"`
}

type Facility struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	GroupID int64  `db:"group_id" json:"groupId"`
}

type BillingRecord struct {
	ID           int64  `db:"id" json:"-"`
	FacilityID   int64  `db:"facility_id" json:"facilityId"`
	Cycle        int    `db:"cycle" json:"cycle"`
	BillingDate  string `db:"billing_date" json:"billingDate"`
	FromDate     string `db:"from_date" json:"fromDate"`
	ThroughDate  string `db:"through_date" json:"throughDate"`
	BilledAmount string `db:"billed_amount" json:"billedAmount"`
	PaidAmount   string `db:"paid_amount" json:"paidAmount"`
	PaidDate     string `db:"paid_date" json:"paidDate"`
	StatusID     *int64 `db:"status_id" json:"statusId"`
}

type CustomDate struct {
	ID            int64   `db:"id" json:"-"`
	GroupID       int64   `db:"group_id" json:"-"`
	Date          string  `db:"date" json:"date"`
	Frequency     string  `db:"frequency" json:"frequency"`
	CustomFrom    *string `db:"custom_from" json:"customFrom,omitempty"`
	CustomThrough *string `db:"custom_through" json:"customThrough,omitempty"`
}

type Setting struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

// BillingSummary aggregates the free-text amounts of one facility's records.
type BillingSummary struct {
	FacilityID  int64  `json:"facilityId"`
	Records     int    `json:"records"`
	Skipped     int    `json:"skipped"`
	Billed      string `json:"billed"`
	Paid        string `json:"paid"`
	Outstanding string `json:"outstanding"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	ID      *int64 `json:"id,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
