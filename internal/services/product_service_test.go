package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"catalogue/internal/apperrors"
	"catalogue/internal/models"
	"catalogue/internal/repositories"
	"catalogue/internal/services"
)

func newProductService(productRepo *MockProductRepository, tagRepo *MockTagRepository) *services.ProductService {
	return services.NewProductService(productRepo, services.NewTagReconciler(tagRepo))
}

func TestProductService_List_Pagination(t *testing.T) {
	productRepo := new(MockProductRepository)
	tagRepo := new(MockTagRepository)
	service := newProductService(productRepo, tagRepo)

	items := []models.Product{
		{ID: 1, Title: "Clavier", Price: 7500, Stock: 5},
		{ID: 2, Title: "Souris", Price: 2500, Stock: 12},
	}

	// Explicit page/pageSize translate to the matching offset/limit.
	productRepo.On("List", repositories.ProductListParams{
		Offset:      20,
		Limit:       10,
		InStockOnly: true,
	}).Return(items, int64(42), nil).Once()

	page, err := service.List(3, 10, nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, page.CurrentPage)
	assert.Equal(t, int64(42), page.TotalProducts)
	assert.Equal(t, 5, page.TotalPages) // ceil(42/10)
	assert.Len(t, page.Products, 2)
	productRepo.AssertExpectations(t)
}

func TestProductService_List_MalformedPaginationFallsBack(t *testing.T) {
	productRepo := new(MockProductRepository)
	tagRepo := new(MockTagRepository)
	service := newProductService(productRepo, tagRepo)

	// Non-positive values (the handler maps non-numeric input to 0)
	// fall back to page 1, pageSize 10 instead of erroring.
	productRepo.On("List", repositories.ProductListParams{
		Offset:      0,
		Limit:       10,
		InStockOnly: true,
	}).Return([]models.Product{}, int64(0), nil).Twice()

	page, err := service.List(0, 0, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)

	page, err = service.List(-3, -1, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 0, page.TotalPages)
	productRepo.AssertExpectations(t)
}

func TestProductService_List_PageSizeCapped(t *testing.T) {
	productRepo := new(MockProductRepository)
	tagRepo := new(MockTagRepository)
	service := newProductService(productRepo, tagRepo)

	productRepo.On("List", repositories.ProductListParams{
		Offset:      0,
		Limit:       100,
		InStockOnly: true,
	}).Return([]models.Product{}, int64(250), nil).Once()

	page, err := service.List(1, 5000, nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages) // ceil(250/100)
	productRepo.AssertExpectations(t)
}

func TestProductService_List_TagFilterDeduped(t *testing.T) {
	productRepo := new(MockProductRepository)
	tagRepo := new(MockTagRepository)
	service := newProductService(productRepo, tagRepo)

	productRepo.On("List", repositories.ProductListParams{
		Offset:      0,
		Limit:       10,
		InStockOnly: true,
		TagNames:    []string{"promo", "neuf"},
	}).Return([]models.Product{}, int64(0), nil).Once()

	_, err := service.List(1, 10, []string{"promo", "neuf", "promo"})
	assert.NoError(t, err)
	productRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_StrictTags(t *testing.T) {
	productRepo := new(MockProductRepository)
	tagRepo := new(MockTagRepository)
	service := newProductService(productRepo, tagRepo)

	known := models.Tag{ID: 7, Name: "connu"}
	tagRepo.On("FindByNames", []string{"connu"}).Return([]models.Tag{known}, nil).Once()
	productRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	product, err := service.CreateProduct(services.CreateProductInput{
		Title:       "Casque",
		Price:       9900,
		Description: "Casque audio",
		Stock:       3,
		Tags:        []string{"connu"},
	})
	assert.NoError(t, err)
	assert.Equal(t, []models.Tag{known}, product.Tags)
	productRepo.AssertExpectations(t)
	tagRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_UnknownTagWritesNothing(t *testing.T) {
	productRepo := new(MockProductRepository)
	tagRepo := new(MockTagRepository)
	service := newProductService(productRepo, tagRepo)

	tagRepo.On("FindByNames", []string{"connu", "inconnu"}).
		Return([]models.Tag{{ID: 7, Name: "connu"}}, nil).Once()

	_, err := service.CreateProduct(services.CreateProductInput{
		Title:       "Casque",
		Description: "Casque audio",
		Tags:        []string{"connu", "inconnu"},
	})
	assert.Error(t, err)

	var appErr *apperrors.Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.Validation, appErr.Kind)
	assert.Equal(t, []string{"inconnu"}, appErr.MissingTags)

	// The failure happened before any product write.
	productRepo.AssertNotCalled(t, "Create", mock.Anything)
	tagRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_PartialFields(t *testing.T) {
	productRepo := new(MockProductRepository)
	tagRepo := new(MockTagRepository)
	service := newProductService(productRepo, tagRepo)

	existing := &models.Product{ID: 4, Title: "Souris", Price: 2500, Description: "Souris filaire", Stock: 8}
	newPrice := 1990

	productRepo.On("GetByID", uint(4)).Return(existing, nil).Twice()
	productRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool {
		// Only the supplied field changed.
		return p.ID == 4 && p.Price == 1990 && p.Title == "Souris" && p.Stock == 8
	})).Return(nil).Once()

	_, err := service.UpdateProduct(4, services.UpdateProductInput{Price: &newPrice})
	assert.NoError(t, err)
	productRepo.AssertExpectations(t)
	productRepo.AssertNotCalled(t, "ReplaceTags", mock.Anything, mock.Anything)
}

func TestProductService_UpdateProduct_TagsReplaceStrictly(t *testing.T) {
	productRepo := new(MockProductRepository)
	tagRepo := new(MockTagRepository)
	service := newProductService(productRepo, tagRepo)

	existing := &models.Product{ID: 4, Title: "Souris", Tags: []models.Tag{{ID: 1, Name: "ancien"}}}
	replacement := models.Tag{ID: 2, Name: "nouveau"}
	tagNames := []string{"nouveau"}

	productRepo.On("GetByID", uint(4)).Return(existing, nil).Twice()
	tagRepo.On("FindByNames", tagNames).Return([]models.Tag{replacement}, nil).Once()
	productRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	productRepo.On("ReplaceTags", existing, []models.Tag{replacement}).Return(nil).Once()

	_, err := service.UpdateProduct(4, services.UpdateProductInput{Tags: &tagNames})
	assert.NoError(t, err)
	productRepo.AssertExpectations(t)
	tagRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_UnknownTagLeavesProductUntouched(t *testing.T) {
	productRepo := new(MockProductRepository)
	tagRepo := new(MockTagRepository)
	service := newProductService(productRepo, tagRepo)

	existing := &models.Product{ID: 4, Title: "Souris"}
	tagNames := []string{"inconnu"}
	newTitle := "Souris sans fil"

	productRepo.On("GetByID", uint(4)).Return(existing, nil).Once()
	tagRepo.On("FindByNames", tagNames).Return([]models.Tag{}, nil).Once()

	_, err := service.UpdateProduct(4, services.UpdateProductInput{Title: &newTitle, Tags: &tagNames})
	assert.Error(t, err)
	assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))

	productRepo.AssertNotCalled(t, "Update", mock.Anything)
	productRepo.AssertNotCalled(t, "ReplaceTags", mock.Anything, mock.Anything)
}

func TestProductService_AddProductTags_Permissive(t *testing.T) {
	productRepo := new(MockProductRepository)
	tagRepo := new(MockTagRepository)
	service := newProductService(productRepo, tagRepo)

	existing := &models.Product{ID: 9, Title: "Écran"}
	fresh := models.Tag{ID: 11, Name: "nouveau"}

	productRepo.On("GetByID", uint(9)).Return(existing, nil).Twice()
	// Duplicate names in the request collapse to a single resolution.
	tagRepo.On("FirstOrCreate", "nouveau").Return(&fresh, nil).Once()
	productRepo.On("AppendTags", existing, []models.Tag{fresh}).Return(nil).Once()

	_, err := service.AddProductTags(9, []string{"nouveau", "nouveau"})
	assert.NoError(t, err)
	productRepo.AssertExpectations(t)
	tagRepo.AssertExpectations(t)
}

func TestProductService_GetAndDelete_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	tagRepo := new(MockTagRepository)
	service := newProductService(productRepo, tagRepo)

	notFound := apperrors.New(apperrors.NotFound, "Produit non trouvé")
	productRepo.On("GetByID", uint(99)).Return(nil, notFound).Once()
	productRepo.On("Delete", uint(99)).Return(notFound).Once()

	_, err := service.GetProductByID(99)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	err = service.DeleteProduct(99)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
	productRepo.AssertExpectations(t)
}
