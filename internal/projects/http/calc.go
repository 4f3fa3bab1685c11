package projectshttp

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/agriprojet/agriprojet/internal/crops"
	"github.com/agriprojet/agriprojet/internal/cycles"
	"github.com/agriprojet/agriprojet/internal/parcels"
	"github.com/agriprojet/agriprojet/internal/platform/httpx"
	"github.com/agriprojet/agriprojet/internal/projection"
	"github.com/agriprojet/agriprojet/internal/projects"
)

func (h *Handler) handleCrops(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		httpx.JSON(w, http.StatusOK, h.catalog.All())
		return
	}
	cat := crops.Category(strings.ToLower(category))
	if !cat.Valid() {
		httpx.RespondError(w, fmt.Errorf("%w: unknown category %q", httpx.ErrValidation, category))
		return
	}
	httpx.JSON(w, http.StatusOK, h.catalog.ByCategory(cat))
}

type parcelRequest struct {
	Parcel parcels.Parcel `json:"parcel"`
	Crop   *crops.Crop    `json:"crop,omitempty"`
}

type parcelResponse struct {
	Crop    *crops.Crop     `json:"crop,omitempty"`
	Metrics parcels.Metrics `json:"metrics"`
}

func (h *Handler) handleCalcParcel(w http.ResponseWriter, r *http.Request) {
	var req parcelRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if req.Parcel.Surface < 0 {
		httpx.RespondError(w, fmt.Errorf("%w: surface must not be negative", httpx.ErrValidation))
		return
	}
	crop := req.Crop
	if crop != nil {
		if err := crops.Validate(*crop); err != nil {
			httpx.RespondError(w, fmt.Errorf("%w: %w", httpx.ErrValidation, err))
			return
		}
	} else {
		crop = parcels.ResolveCrop(req.Parcel, h.catalog.Lookup())
	}
	httpx.JSON(w, http.StatusOK, parcelResponse{Crop: crop, Metrics: parcels.CalculateParcelMetrics(req.Parcel, crop)})
}

type portfolioRequest struct {
	Parcels     []parcels.Parcel     `json:"parcels"`
	Plantations []parcels.Plantation `json:"plantations"`
	CustomCrops []crops.Crop         `json:"customCrops"`
}

type portfolioResponse struct {
	Portfolio   parcels.PortfolioMetrics    `json:"portfolio"`
	Plantations []parcels.PlantationMetrics `json:"plantations"`
}

func (h *Handler) handleCalcPortfolio(w http.ResponseWriter, r *http.Request) {
	var req portfolioRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	catalog := h.catalog
	if len(req.CustomCrops) > 0 {
		var err error
		catalog, err = crops.NewCatalog(append(h.catalog.Custom(), req.CustomCrops...)...)
		if err != nil {
			httpx.RespondError(w, fmt.Errorf("%w: %w", httpx.ErrValidation, err))
			return
		}
	}
	lookup := catalog.Lookup()
	resp := portfolioResponse{
		Portfolio:   parcels.CalculatePortfolioMetrics(req.Parcels, lookup),
		Plantations: make([]parcels.PlantationMetrics, 0, len(req.Plantations)),
	}
	for _, pl := range req.Plantations {
		resp.Plantations = append(resp.Plantations, parcels.CalculatePlantationMetrics(pl, req.Parcels, lookup))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

type cyclesResponse struct {
	CycleMonths   int   `json:"cycleMonths"`
	RestMonths    int   `json:"restMonths"`
	CyclesPerYear int   `json:"cyclesPerYear"`
	HarvestMonths []int `json:"harvestMonths"`
}

func (h *Handler) handleCalcCycles(w http.ResponseWriter, r *http.Request) {
	cycle, err := intParam(r, "cycle", cycles.DefaultCycleMonths)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	rest, err := intParam(r, "rest", cycles.DefaultRestMonths)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	harvests := cycles.HarvestMonths(0, cycle, rest)
	if harvests == nil {
		harvests = []int{}
	}
	httpx.JSON(w, http.StatusOK, cyclesResponse{
		CycleMonths:   cycle,
		RestMonths:    rest,
		CyclesPerYear: cycles.PerYear(cycle, rest),
		HarvestMonths: harvests,
	})
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", httpx.ErrValidation, name)
	}
	return v, nil
}

type statementRequest struct {
	Plan        projection.Plan         `json:"plan"`
	Assumptions *projection.Assumptions `json:"assumptions,omitempty"`
	OpeningCash float64                 `json:"openingCash"`
}

type statementResponse struct {
	Assumptions   projection.Assumptions     `json:"assumptions"`
	Statements    []projection.YearStatement `json:"statements"`
	BalanceSheets []projection.BalanceSheet  `json:"balanceSheets"`
	Ratios        []projection.Ratios        `json:"ratios"`
	Breakeven     []projection.Breakeven     `json:"breakeven"`
	CashFlow      projection.CashFlowPlan    `json:"cashFlow"`
	Balanced      bool                       `json:"balanced"`
}

func (h *Handler) handleCalcStatement(w http.ResponseWriter, r *http.Request) {
	var req statementRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validate.Struct(req.Plan); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := projects.CheckPlan(req.Plan); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if req.OpeningCash < 0 {
		httpx.RespondError(w, fmt.Errorf("%w: openingCash must not be negative", httpx.ErrValidation))
		return
	}
	a := h.service.Defaults()
	if req.Assumptions != nil {
		if err := h.validate.Struct(req.Assumptions); err != nil {
			httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
			return
		}
		a = *req.Assumptions
	}

	p := projects.Project{Content: projects.Content{
		Plan:       req.Plan,
		Parameters: projects.Parameters{OpeningCash: req.OpeningCash},
	}}
	report := projects.BuildReport(p, h.catalog, a)
	httpx.JSON(w, http.StatusOK, statementResponse{
		Assumptions:   report.Assumptions,
		Statements:    report.Statements,
		BalanceSheets: report.BalanceSheets,
		Ratios:        report.Ratios,
		Breakeven:     report.Breakeven,
		CashFlow:      report.CashFlow,
		Balanced:      report.Balanced(),
	})
}
