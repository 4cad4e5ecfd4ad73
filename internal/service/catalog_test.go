package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veldkraal/farm_shop/internal/models"
	"github.com/Veldkraal/farm_shop/internal/repo"
	"github.com/Veldkraal/farm_shop/internal/transport"
)

func TestCreateProduct_SlugsAreUnique(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	first, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Free Range Eggs", PriceCents: 4500})
	require.NoError(t, err)
	assert.Equal(t, "free-range-eggs", first.Slug)

	second, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Free Range Eggs", PriceCents: 5500})
	require.NoError(t, err)
	assert.Equal(t, "free-range-eggs-2", second.Slug)

	third, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Free Range Eggs", PriceCents: 6500})
	require.NoError(t, err)
	assert.Equal(t, "free-range-eggs-3", third.Slug)
}

func TestCreateProduct_Validation(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "  "})
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Milk", PriceCents: -1})
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Milk", PriceCents: 100, Stock: -1})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateProduct_ExplicitInactiveReachesRow(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	inactive := false
	prod, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Draft Jam", PriceCents: 4800, Active: &inactive})
	require.NoError(t, err)
	assert.False(t, prod.Active)

	// The stored row must hold false too, not a column default.
	var row models.Product
	require.NoError(t, r.DB.First(&row, prod.ID).Error)
	assert.False(t, row.Active)

	// And omitting the flag still means active.
	prod, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Live Jam", PriceCents: 5200})
	require.NoError(t, err)
	row = models.Product{}
	require.NoError(t, r.DB.First(&row, prod.ID).Error)
	assert.True(t, row.Active)
}

func TestGetProductBySlug_HidesInactive(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	inactive := false
	prod, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Winter Squash", PriceCents: 2000, Active: &inactive})
	require.NoError(t, err)

	_, err = svc.GetProductBySlug(ctx, prod.Slug)
	require.ErrorIs(t, err, ErrNotFound)

	// By id the product stays reachable for admin tooling.
	got, err := svc.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestPatchProduct_RenameRefreshesSlug(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	prod, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Raw Honey", PriceCents: 9000})
	require.NoError(t, err)
	require.Equal(t, "raw-honey", prod.Slug)

	newName := "Fynbos Honey"
	patched, err := svc.PatchProduct(ctx, prod.ID, transport.PatchProductRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Fynbos Honey", patched.Name)
	assert.Equal(t, "fynbos-honey", patched.Slug)

	// A price-only patch keeps the slug.
	price := int64(9500)
	patched, err = svc.PatchProduct(ctx, prod.ID, transport.PatchProductRequest{PriceCents: &price})
	require.NoError(t, err)
	assert.Equal(t, "fynbos-honey", patched.Slug)
	assert.EqualValues(t, 9500, patched.PriceCents)

	_, err = svc.PatchProduct(ctx, 9999, transport.PatchProductRequest{PriceCents: &price})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProduct_CleansUpCartRows(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	catalogSvc := &CatalogService{Repo: r}
	cartSvc := &CartService{Repo: r}
	ctx := context.Background()

	user := createUser(t, r, "cleanup@example.com")
	prod := createProduct(t, r, "Goat Cheese", "goat-cheese", 7500)

	_, err := cartSvc.AddItem(ctx, user.ID, transport.AddToCartRequest{ProductID: prod.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, catalogSvc.DeleteProduct(ctx, prod.ID))

	view, err := cartSvc.View(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items, "deleted product leaves no dangling cart rows")

	require.ErrorIs(t, catalogSvc.DeleteProduct(ctx, prod.ID), ErrNotFound)
}

func TestAddImage_AppendsPosition(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod := createProduct(t, r, "Plums", "plums", 3000)

	first, err := svc.AddImage(ctx, prod.ID, transport.AddProductImageRequest{URL: "https://img.example/p1.jpg"})
	require.NoError(t, err)
	second, err := svc.AddImage(ctx, prod.ID, transport.AddProductImageRequest{URL: "https://img.example/p2.jpg"})
	require.NoError(t, err)
	assert.Greater(t, second.Position, first.Position)

	_, err = svc.AddImage(ctx, 9999, transport.AddProductImageRequest{URL: "https://img.example/x.jpg"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddImage(ctx, prod.ID, transport.AddProductImageRequest{URL: "  "})
	require.ErrorIs(t, err, ErrValidation)
}

func TestReorderImages(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod := createProduct(t, r, "Apricots", "apricots", 4000)
	var ids []uint
	for _, url := range []string{"https://img.example/a.jpg", "https://img.example/b.jpg", "https://img.example/c.jpg"} {
		img, err := svc.AddImage(ctx, prod.ID, transport.AddProductImageRequest{URL: url})
		require.NoError(t, err)
		ids = append(ids, img.ID)
	}

	reordered, err := svc.ReorderImages(ctx, prod.ID, transport.ReorderImagesRequest{ImageIDs: []uint{ids[2], ids[0], ids[1]}})
	require.NoError(t, err)
	require.Len(t, reordered, 3)
	assert.Equal(t, ids[2], reordered[0].ID)
	assert.Equal(t, ids[0], reordered[1].ID)
	assert.Equal(t, ids[1], reordered[2].ID)

	_, err = svc.ReorderImages(ctx, prod.ID, transport.ReorderImagesRequest{})
	require.ErrorIs(t, err, ErrValidation)
}

func TestReorderImages_ForeignImageAbortsBatch(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod := createProduct(t, r, "Pears", "pears", 3500)
	other := createProduct(t, r, "Quinces", "quinces", 3800)

	mine, err := svc.AddImage(ctx, prod.ID, transport.AddProductImageRequest{URL: "https://img.example/mine.jpg"})
	require.NoError(t, err)
	foreign, err := svc.AddImage(ctx, other.ID, transport.AddProductImageRequest{URL: "https://img.example/foreign.jpg"})
	require.NoError(t, err)

	_, err = svc.ReorderImages(ctx, prod.ID, transport.ReorderImagesRequest{ImageIDs: []uint{foreign.ID, mine.ID}})
	require.ErrorIs(t, err, ErrNotFound)

	// The batch aborted before touching anything.
	images, err := r.ListProductImages(ctx, prod.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, 0, images[0].Position)
}

func TestCategories(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	veg, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Vegetables"})
	require.NoError(t, err)
	assert.Equal(t, "vegetables", veg.Slug)

	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: " "})
	require.ErrorIs(t, err, ErrValidation)

	prod, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Carrots", PriceCents: 1500, CategoryID: &veg.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, veg.ID))
	require.ErrorIs(t, svc.DeleteCategory(ctx, veg.ID), ErrNotFound)

	// Products survive their category.
	reloaded, err := svc.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CategoryID)

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestListProducts_Filters(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	inactive := false
	_, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Hidden", PriceCents: 100, Active: &inactive})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Fresh Bread", PriceCents: 2500, Featured: true})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Rusks", PriceCents: 3200})
	require.NoError(t, err)

	total, items, err := svc.ListProducts(ctx, repo.ListProductsFilter{ActiveOnly: true}, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)

	total, items, err = svc.ListProducts(ctx, repo.ListProductsFilter{ActiveOnly: true, Featured: true}, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Fresh Bread", items[0].Name)
}
