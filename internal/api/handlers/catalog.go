package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jpmardones/despensa/internal/catalog"
	domain "github.com/jpmardones/despensa/pkg/types"
)

// CatalogHandler serves the canonical reference catalogs.
type CatalogHandler struct {
	catalog catalog.Catalog
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(c catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// ListIngredientsInput has no parameters.
type ListIngredientsInput struct{}

// ListIngredientsOutput is the full canonical ingredient catalog.
type ListIngredientsOutput struct {
	Body struct {
		Ingredients []domain.CanonicalIngredient `json:"ingredients"`
	}
}

// ListPreparedFoodsInput has no parameters.
type ListPreparedFoodsInput struct{}

// ListPreparedFoodsOutput is the full canonical prepared-food catalog.
type ListPreparedFoodsOutput struct {
	Body struct {
		PreparedFoods []domain.CanonicalPreparedFood `json:"prepared_foods"`
	}
}

// ListIngredients returns every canonical ingredient.
func (h *CatalogHandler) ListIngredients(
	ctx context.Context,
	_ *ListIngredientsInput,
) (*ListIngredientsOutput, error) {
	ings, err := h.catalog.Ingredients(ctx)
	if err != nil {
		return nil, mapServiceError(err)
	}

	resp := &ListIngredientsOutput{}
	resp.Body.Ingredients = ings
	return resp, nil
}

// ListPreparedFoods returns every canonical prepared food.
func (h *CatalogHandler) ListPreparedFoods(
	ctx context.Context,
	_ *ListPreparedFoodsInput,
) (*ListPreparedFoodsOutput, error) {
	pfs, err := h.catalog.PreparedFoods(ctx)
	if err != nil {
		return nil, mapServiceError(err)
	}

	resp := &ListPreparedFoodsOutput{}
	resp.Body.PreparedFoods = pfs
	return resp, nil
}

// RegisterCatalogRoutes registers catalog endpoints with the Huma API.
func RegisterCatalogRoutes(api huma.API, h *CatalogHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-ingredients",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/ingredients",
		Summary:     "List canonical ingredients",
		Tags:        []string{"catalog"},
	}, h.ListIngredients)

	huma.Register(api, huma.Operation{
		OperationID: "list-prepared-foods",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/prepared-foods",
		Summary:     "List canonical prepared foods",
		Tags:        []string{"catalog"},
	}, h.ListPreparedFoods)
}
