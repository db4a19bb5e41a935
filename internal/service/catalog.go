package service

import (
	"context"

	"kitchen_lab/internal/appliance"
	"kitchen_lab/internal/models"
)

type CatalogService struct {
	session *appliance.Session
	presets []int
}

func NewCatalogService(session *appliance.Session, presets []int) *CatalogService {
	return &CatalogService{session: session, presets: append([]int(nil), presets...)}
}

// GetCatalog lists recipes, foods and countdown presets in configured order.
func (s *CatalogService) GetCatalog(ctx context.Context) (models.CatalogView, error) {
	if err := ctx.Err(); err != nil {
		return models.CatalogView{}, err
	}
	out := models.CatalogView{
		Recipes:          []models.Recipe{},
		Foods:            []models.Food{},
		CountdownPresets: append([]int{}, s.presets...),
	}
	for _, r := range s.session.Recipes() {
		out.Recipes = append(out.Recipes, models.Recipe{Name: r.Name, HydrationPct: r.HydrationPct})
	}
	for _, f := range s.session.Foods() {
		out.Foods = append(out.Foods, models.Food{
			Name:   f.Name,
			Macros: models.Macros{Cal: f.Facts.Cal, Protein: f.Facts.Protein, Carbs: f.Facts.Carbs, Fat: f.Facts.Fat},
		})
	}
	return out, nil
}
