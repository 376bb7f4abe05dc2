package material

type MaterialForm struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Quantity    *float64 `json:"quantity" validate:"omitempty,gte=0"`
	Unit        string   `json:"unit" validate:"max=50"`
	CostPerUnit *float64 `json:"cost_per_unit" validate:"omitempty,gte=0"`
	Supplier    string   `json:"supplier" validate:"max=200"`
}

// quantity defaults to 1 when the field is omitted.
func (f *MaterialForm) quantity() float64 {
	if f.Quantity == nil {
		return 1.0
	}
	return *f.Quantity
}

// MaterialResponse augments the entity with its computed total cost.
type MaterialResponse struct {
	Material
	TotalCost float64 `json:"total_cost"`
}

func toResponse(m *Material) MaterialResponse {
	return MaterialResponse{Material: *m, TotalCost: m.TotalCost()}
}

func toResponses(ms []*Material) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, toResponse(m))
	}
	return out
}
