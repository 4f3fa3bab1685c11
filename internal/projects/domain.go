// Package projects stores business plans per user and assembles their
// financial reports.
package projects

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agriprojet/agriprojet/internal/crops"
	"github.com/agriprojet/agriprojet/internal/parcels"
	"github.com/agriprojet/agriprojet/internal/platform/httpx"
	"github.com/agriprojet/agriprojet/internal/projection"
)

var (
	// ErrNotFound is returned when a project does not exist.
	ErrNotFound = fmt.Errorf("projects: %w", httpx.ErrNotFound)
	// ErrDuplicate is returned when a user already owns a project with the same name.
	ErrDuplicate = fmt.Errorf("projects: %w", httpx.ErrDuplicate)
	// ErrForbidden is returned when a user reads another user's project.
	ErrForbidden = fmt.Errorf("projects: %w", httpx.ErrForbidden)
	// ErrValidation wraps input validation failures.
	ErrValidation = fmt.Errorf("projects: %w", httpx.ErrValidation)
	// ErrUserRequired is returned when the caller identity is missing.
	ErrUserRequired = fmt.Errorf("projects: user required: %w", httpx.ErrUnauthorized)
)

// Company describes the business the plan is written for.
type Company struct {
	Name      string    `json:"name" validate:"required,max=160"`
	LegalForm string    `json:"legalForm,omitempty" validate:"max=60"`
	Location  string    `json:"location,omitempty" validate:"max=160"`
	StartDate time.Time `json:"startDate"`
}

// Parameters are the projection settings of a project. A nil Assumptions
// means the service defaults apply. DeriveSalesFromParcels adds one sales line
// per cultivated parcel to the plan.
type Parameters struct {
	Assumptions            *projection.Assumptions `json:"assumptions,omitempty"`
	OpeningCash            float64                 `json:"openingCash" validate:"gte=0"`
	DeriveSalesFromParcels bool                    `json:"deriveSalesFromParcels"`
}

// Content is everything a user edits in a project. It is stored as JSON and
// hashed to key the report cache.
type Content struct {
	Company     Company              `json:"company"`
	Plantations []parcels.Plantation `json:"plantations" validate:"dive"`
	Parcels     []parcels.Parcel     `json:"parcels" validate:"dive"`
	CustomCrops []crops.Crop         `json:"customCrops"`
	Plan        projection.Plan      `json:"plan"`
	Parameters  Parameters           `json:"parameters"`
}

// Project is a stored business plan.
type Project struct {
	Content
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary is the list view of a project.
type Summary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ParcelLine pairs a parcel with its metrics in a report.
type ParcelLine struct {
	ParcelID     string          `json:"parcelId"`
	Name         string          `json:"name"`
	PlantationID string          `json:"plantationId,omitempty"`
	CropID       string          `json:"cropId,omitempty"`
	CropName     string          `json:"cropName,omitempty"`
	Surface      float64         `json:"surface"`
	Status       parcels.Status  `json:"status"`
	Metrics      parcels.Metrics `json:"metrics"`
}

// Report is the computed financial picture of a project.
type Report struct {
	ProjectID     uuid.UUID                   `json:"projectId"`
	ContentHash   string                      `json:"contentHash"`
	Assumptions   projection.Assumptions      `json:"assumptions"`
	Portfolio     parcels.PortfolioMetrics    `json:"portfolio"`
	Plantations   []parcels.PlantationMetrics `json:"plantations"`
	Parcels       []ParcelLine                `json:"parcels"`
	Statements    []projection.YearStatement  `json:"statements"`
	BalanceSheets []projection.BalanceSheet   `json:"balanceSheets"`
	Ratios        []projection.Ratios         `json:"ratios"`
	Breakeven     []projection.Breakeven      `json:"breakeven"`
	CashFlow      projection.CashFlowPlan     `json:"cashFlow"`
}

// Balanced reports whether every projected balance sheet passes its check.
func (r Report) Balanced() bool {
	for _, bs := range r.BalanceSheets {
		if !bs.BalanceCheck {
			return false
		}
	}
	return true
}

// UnbalancedYears lists the years whose balance check failed.
func (r Report) UnbalancedYears() []int {
	var years []int
	for _, bs := range r.BalanceSheets {
		if !bs.BalanceCheck {
			years = append(years, bs.Year)
		}
	}
	return years
}
