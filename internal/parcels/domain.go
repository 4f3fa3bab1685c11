// Package parcels models parcels and plantations and computes their financial
// metrics from the crop catalog.
package parcels

import (
	"strings"
	"time"
)

// Status is the lifecycle of a parcel within one campaign.
type Status string

const (
	StatusPrepared  Status = "prepared"
	StatusPlanted   Status = "planted"
	StatusGrowing   Status = "growing"
	StatusHarvested Status = "harvested"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPrepared, StatusPlanted, StatusGrowing, StatusHarvested:
		return true
	}
	return false
}

// Next returns the following status. A harvested parcel goes back to prepared
// for the next campaign.
func (s Status) Next() Status {
	switch s {
	case StatusPrepared:
		return StatusPlanted
	case StatusPlanted:
		return StatusGrowing
	case StatusGrowing:
		return StatusHarvested
	default:
		return StatusPrepared
	}
}

// ExploitationType is the legal/organisational form of a plantation.
type ExploitationType string

const (
	ExploitationIndividuelle ExploitationType = "individuelle"
	ExploitationFamiliale    ExploitationType = "familiale"
	ExploitationCooperative  ExploitationType = "cooperative"
	ExploitationSociete      ExploitationType = "societe"
)

// Valid reports whether t is a known exploitation type.
func (t ExploitationType) Valid() bool {
	switch t {
	case ExploitationIndividuelle, ExploitationFamiliale, ExploitationCooperative, ExploitationSociete:
		return true
	}
	return false
}

// PlantationStatus is the lifecycle of a plantation.
type PlantationStatus string

const (
	PlantationActive     PlantationStatus = "active"
	PlantationEnCreation PlantationStatus = "en_creation"
	PlantationSuspendue  PlantationStatus = "suspendue"
)

// Valid reports whether s is a known plantation status.
func (s PlantationStatus) Valid() bool {
	switch s {
	case PlantationActive, PlantationEnCreation, PlantationSuspendue:
		return true
	}
	return false
}

// ManualCosts are the costs entered by hand for a parcel without a crop.
type ManualCosts struct {
	Preparation float64 `json:"preparation" validate:"gte=0"`
	Inputs      float64 `json:"intrants" validate:"gte=0"`
	Labor       float64 `json:"mainOeuvre" validate:"gte=0"`
	Other       float64 `json:"autres" validate:"gte=0"`
}

// Total sums the manual cost fields.
func (c ManualCosts) Total() float64 {
	return c.Preparation + c.Inputs + c.Labor + c.Other
}

// CropAssignment records a crop that used to occupy a parcel.
type CropAssignment struct {
	CropID     string    `json:"cropId"`
	AssignedAt time.Time `json:"assignedAt"`
	RemovedAt  time.Time `json:"removedAt"`
}

// Parcel is a plot of land, optionally planted with a catalog crop.
type Parcel struct {
	ID            string           `json:"id" validate:"required"`
	Name          string           `json:"name" validate:"required,max=120"`
	Surface       float64          `json:"surface" validate:"gte=0"`
	PlantationID  string           `json:"plantationId,omitempty"`
	CropID        string           `json:"cropId,omitempty"`
	CropAssigned  time.Time        `json:"cropAssignedAt,omitempty"`
	Costs         ManualCosts      `json:"costs"`
	ExpectedYield float64          `json:"expectedYield" validate:"gte=0"`
	Status        Status           `json:"status"`
	History       []CropAssignment `json:"history,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	Notes         string           `json:"notes,omitempty"`
}

// HasCrop reports whether a crop id is set, regardless of whether it resolves.
func (p Parcel) HasCrop() bool {
	return strings.TrimSpace(p.CropID) != ""
}

// AssignCrop replaces the current crop and appends the previous one to the
// history. Assigning the current crop again is a no-op.
func (p *Parcel) AssignCrop(cropID string, at time.Time) {
	cropID = strings.TrimSpace(cropID)
	if cropID == p.CropID {
		return
	}
	if p.HasCrop() {
		p.History = append(p.History, CropAssignment{
			CropID:     p.CropID,
			AssignedAt: p.CropAssigned,
			RemovedAt:  at,
		})
	}
	p.CropID = cropID
	p.CropAssigned = at
	if cropID == "" {
		p.CropAssigned = time.Time{}
	}
}

// Advance moves the parcel to its next lifecycle status.
func (p *Parcel) Advance() Status {
	if !p.Status.Valid() {
		p.Status = StatusPrepared
		return p.Status
	}
	p.Status = p.Status.Next()
	return p.Status
}

// Plantation groups parcels under one owner and location.
type Plantation struct {
	ID               string           `json:"id" validate:"required"`
	Name             string           `json:"name" validate:"required,max=120"`
	Location         string           `json:"location"`
	DeclaredSurface  float64          `json:"declaredSurface" validate:"gte=0"`
	Owner            string           `json:"owner"`
	ExploitationType ExploitationType `json:"exploitationType"`
	Status           PlantationStatus `json:"status"`
}
