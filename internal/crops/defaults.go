package crops

// DefaultCrops returns the built-in reference table. Prices and costs are FCFA,
// yields are per hectare and per cycle, as observed on Ivorian markets.
func DefaultCrops() []Crop {
	return []Crop{
		{
			ID: "tomate", Name: "Tomate", Category: CategoryMaraichage,
			CycleMonths: 4, RestMonths: 1, Unit: UnitKg, YieldPerHectare: 25000,
			Price:           PriceRange{Min: 150, Max: 400, Average: 250},
			ProductionCosts: ProductionCosts{Seeds: 150000, Fertilizer: 300000, Pesticides: 150000, Labor: 400000},
			PlantingDensity: 25000, Rotations: []string{"mais", "arachide", "niebe"},
		},
		{
			ID: "piment", Name: "Piment", Category: CategoryMaraichage,
			CycleMonths: 5, RestMonths: 1, Unit: UnitKg, YieldPerHectare: 10000,
			Price:           PriceRange{Min: 300, Max: 800, Average: 500},
			ProductionCosts: ProductionCosts{Seeds: 100000, Fertilizer: 250000, Pesticides: 120000, Labor: 350000},
			PlantingDensity: 20000, Rotations: []string{"mais", "niebe"},
		},
		{
			ID: "aubergine", Name: "Aubergine", Category: CategoryMaraichage,
			CycleMonths: 5, RestMonths: 1, Unit: UnitKg, YieldPerHectare: 20000,
			Price:           PriceRange{Min: 150, Max: 350, Average: 200},
			ProductionCosts: ProductionCosts{Seeds: 80000, Fertilizer: 250000, Pesticides: 120000, Labor: 350000},
			PlantingDensity: 15000, Rotations: []string{"arachide", "riz"},
		},
		{
			ID: "gombo", Name: "Gombo", Category: CategoryMaraichage,
			CycleMonths: 3, RestMonths: 1, Unit: UnitKg, YieldPerHectare: 8000,
			Price:           PriceRange{Min: 200, Max: 600, Average: 350},
			ProductionCosts: ProductionCosts{Seeds: 60000, Fertilizer: 150000, Pesticides: 80000, Labor: 250000},
			PlantingDensity: 40000, Rotations: []string{"mais", "soja"},
		},
		{
			ID: "chou", Name: "Chou", Category: CategoryMaraichage,
			CycleMonths: 3, RestMonths: 1, Unit: UnitKg, YieldPerHectare: 30000,
			Price:           PriceRange{Min: 100, Max: 300, Average: 175},
			ProductionCosts: ProductionCosts{Seeds: 120000, Fertilizer: 250000, Pesticides: 150000, Labor: 300000},
			PlantingDensity: 30000, Rotations: []string{"tomate", "niebe"},
		},
		{
			ID: "oignon", Name: "Oignon", Category: CategoryMaraichage,
			CycleMonths: 4, RestMonths: 2, Unit: UnitKg, YieldPerHectare: 20000,
			Price:           PriceRange{Min: 250, Max: 600, Average: 400},
			ProductionCosts: ProductionCosts{Seeds: 300000, Fertilizer: 300000, Pesticides: 100000, Labor: 400000},
			PlantingDensity: 300000, Rotations: []string{"mais", "arachide"},
		},
		{
			ID: "laitue", Name: "Laitue", Category: CategoryMaraichage,
			CycleMonths: 2, RestMonths: 0, Unit: UnitKg, YieldPerHectare: 15000,
			Price:           PriceRange{Min: 300, Max: 700, Average: 450},
			ProductionCosts: ProductionCosts{Seeds: 100000, Fertilizer: 150000, Pesticides: 60000, Labor: 250000},
			PlantingDensity: 100000, Rotations: []string{"chou", "niebe"},
		},
		{
			ID: "riz", Name: "Riz paddy", Category: CategoryVivrier,
			CycleMonths: 4, RestMonths: 2, Unit: UnitKg, YieldPerHectare: 4000,
			Price:           PriceRange{Min: 200, Max: 300, Average: 250},
			ProductionCosts: ProductionCosts{Seeds: 60000, Fertilizer: 150000, Pesticides: 50000, Labor: 200000},
			PlantingDensity: 250000, Rotations: []string{"niebe", "soja"},
		},
		{
			ID: "mais", Name: "Maïs", Category: CategoryVivrier,
			CycleMonths: 4, RestMonths: 2, Unit: UnitKg, YieldPerHectare: 3000,
			Price:           PriceRange{Min: 100, Max: 200, Average: 150},
			ProductionCosts: ProductionCosts{Seeds: 50000, Fertilizer: 125000, Pesticides: 40000, Labor: 150000},
			PlantingDensity: 62500, Rotations: []string{"arachide", "niebe", "soja"},
		},
		{
			ID: "manioc", Name: "Manioc", Category: CategoryTubercule,
			CycleMonths: 12, RestMonths: 0, Unit: UnitKg, YieldPerHectare: 20000,
			Price:           PriceRange{Min: 50, Max: 120, Average: 80},
			ProductionCosts: ProductionCosts{Seeds: 100000, Fertilizer: 100000, Pesticides: 30000, Labor: 300000},
			PlantingDensity: 10000, Rotations: []string{"arachide", "mais"},
		},
		{
			ID: "igname", Name: "Igname", Category: CategoryTubercule,
			CycleMonths: 9, RestMonths: 3, Unit: UnitKg, YieldPerHectare: 15000,
			Price:           PriceRange{Min: 200, Max: 500, Average: 300},
			ProductionCosts: ProductionCosts{Seeds: 400000, Fertilizer: 100000, Pesticides: 30000, Labor: 400000},
			PlantingDensity: 10000, Rotations: []string{"mais", "riz"},
		},
		{
			ID: "patate_douce", Name: "Patate douce", Category: CategoryTubercule,
			CycleMonths: 4, RestMonths: 2, Unit: UnitKg, YieldPerHectare: 12000,
			Price:           PriceRange{Min: 100, Max: 250, Average: 175},
			ProductionCosts: ProductionCosts{Seeds: 80000, Fertilizer: 80000, Pesticides: 30000, Labor: 200000},
			PlantingDensity: 33000, Rotations: []string{"mais", "niebe"},
		},
		{
			ID: "arachide", Name: "Arachide", Category: CategoryLegumineuse,
			CycleMonths: 3, RestMonths: 3, Unit: UnitKg, YieldPerHectare: 1500,
			Price:           PriceRange{Min: 300, Max: 600, Average: 450},
			ProductionCosts: ProductionCosts{Seeds: 60000, Fertilizer: 60000, Pesticides: 30000, Labor: 150000},
			PlantingDensity: 110000, Rotations: []string{"mais", "manioc", "tomate"},
		},
		{
			ID: "niebe", Name: "Niébé", Category: CategoryLegumineuse,
			CycleMonths: 3, RestMonths: 2, Unit: UnitKg, YieldPerHectare: 1000,
			Price:           PriceRange{Min: 300, Max: 600, Average: 450},
			ProductionCosts: ProductionCosts{Seeds: 30000, Fertilizer: 50000, Pesticides: 40000, Labor: 120000},
			PlantingDensity: 100000, Rotations: []string{"mais", "riz"},
		},
		{
			ID: "soja", Name: "Soja", Category: CategoryLegumineuse,
			CycleMonths: 4, RestMonths: 2, Unit: UnitKg, YieldPerHectare: 1500,
			Price:           PriceRange{Min: 250, Max: 400, Average: 300},
			ProductionCosts: ProductionCosts{Seeds: 50000, Fertilizer: 60000, Pesticides: 30000, Labor: 120000},
			PlantingDensity: 300000, Rotations: []string{"mais", "riz"},
		},
	}
}
