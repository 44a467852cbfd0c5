package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/gameinventory/internal/domain"
	"github.com/osse101/gameinventory/internal/inventory"
)

// fakeInventoryService implements inventory.Service with injectable behavior
type fakeInventoryService struct {
	createFn      func(ctx context.Context, user domain.UserInfo) (*domain.Inventory, error)
	addFn         func(ctx context.Context, in inventory.ItemToInventory, actor domain.UserInfo) error
	getFn         func(ctx context.Context, userID int) (*domain.InventoryResponse, error)
	useFn         func(ctx context.Context, req inventory.UseItemRequest, user domain.UserInfo) error
	getAllWithFn  func(ctx context.Context, itemID int, actor domain.UserInfo) ([]domain.InventoryResponse, error)
	checkExistsFn func(ctx context.Context, userID int) error
}

func (f *fakeInventoryService) CreateInventory(ctx context.Context, user domain.UserInfo) (*domain.Inventory, error) {
	return f.createFn(ctx, user)
}

func (f *fakeInventoryService) AddToInventory(ctx context.Context, in inventory.ItemToInventory, actor domain.UserInfo) error {
	return f.addFn(ctx, in, actor)
}

func (f *fakeInventoryService) GetUserInventory(ctx context.Context, userID int) (*domain.InventoryResponse, error) {
	return f.getFn(ctx, userID)
}

func (f *fakeInventoryService) UseItem(ctx context.Context, req inventory.UseItemRequest, user domain.UserInfo) error {
	return f.useFn(ctx, req, user)
}

func (f *fakeInventoryService) GetAllWithItem(ctx context.Context, itemID int, actor domain.UserInfo) ([]domain.InventoryResponse, error) {
	return f.getAllWithFn(ctx, itemID, actor)
}

func (f *fakeInventoryService) CheckInventoryExists(ctx context.Context, userID int) error {
	return f.checkExistsFn(ctx, userID)
}

func inventoryRouter(svc *fakeInventoryService) http.Handler {
	r := chi.NewRouter()
	r.Post("/inventory", HandleCreateInventory(svc))
	r.Get("/inventory", HandleGetInventory(svc))
	r.Post("/inventory/items", HandleAddToInventory(svc))
	r.Post("/inventory/use", HandleUseItem(svc))
	r.Get("/items/{id}/inventories", HandleGetInventoriesWithItem(svc))
	return r
}

func TestHandleCreateInventory(t *testing.T) {
	tests := []struct {
		name       string
		caller     *domain.UserInfo
		serviceErr error
		wantStatus int
	}{
		{"created", &testUser, nil, http.StatusCreated},
		{"already exists", &testUser, domain.ErrInventoryAlreadyExists, http.StatusConflict},
		{"no identity", nil, nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeInventoryService{
				createFn: func(ctx context.Context, user domain.UserInfo) (*domain.Inventory, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &domain.Inventory{ID: 1, UserID: user.UserID}, nil
				},
			}

			rec := doRequest(t, inventoryRouter(svc), http.MethodPost, "/inventory", "", tt.caller)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusCreated {
				var got domain.Inventory
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, testUser.UserID, got.UserID)
			}
		})
	}
}

func TestHandleGetInventory(t *testing.T) {
	t.Run("returns the caller's inventory", func(t *testing.T) {
		svc := &fakeInventoryService{
			getFn: func(ctx context.Context, userID int) (*domain.InventoryResponse, error) {
				assert.Equal(t, testUser.UserID, userID)
				return &domain.InventoryResponse{
					UserID: userID,
					Items:  []domain.InventoryItem{{ItemID: 1, Name: "Potion", Amount: 5}},
				}, nil
			},
		}

		rec := doRequest(t, inventoryRouter(svc), http.MethodGet, "/inventory", "", &testUser)
		assert.Equal(t, http.StatusOK, rec.Code)

		var got domain.InventoryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, testUser.UserID, got.UserID)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 5, got.Items[0].Amount)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeInventoryService{
			getFn: func(ctx context.Context, userID int) (*domain.InventoryResponse, error) {
				return nil, domain.ErrInventoryNotFound
			},
		}

		rec := doRequest(t, inventoryRouter(svc), http.MethodGet, "/inventory", "", &testUser)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleAddToInventory(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		caller     *domain.UserInfo
		serviceErr error
		wantStatus int
	}{
		{
			name:       "added",
			body:       `{"user_id": 42, "item_id": 1, "amount": 5}`,
			caller:     &testAdmin,
			wantStatus: http.StatusOK,
		},
		{
			name:       "zero amount fails validation",
			body:       `{"user_id": 42, "item_id": 1, "amount": 0}`,
			caller:     &testAdmin,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "amount over cap fails validation",
			body:       `{"user_id": 42, "item_id": 1, "amount": 10001}`,
			caller:     &testAdmin,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-admin forbidden",
			body:       `{"user_id": 42, "item_id": 1, "amount": 5}`,
			caller:     &testUser,
			serviceErr: domain.ErrNotAdmin,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown item",
			body:       `{"user_id": 42, "item_id": 99, "amount": 5}`,
			caller:     &testAdmin,
			serviceErr: domain.ErrItemNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "no inventory",
			body:       `{"user_id": 7, "item_id": 1, "amount": 5}`,
			caller:     &testAdmin,
			serviceErr: domain.ErrInventoryNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeInventoryService{
				addFn: func(ctx context.Context, in inventory.ItemToInventory, actor domain.UserInfo) error {
					return tt.serviceErr
				},
			}

			rec := doRequest(t, inventoryRouter(svc), http.MethodPost, "/inventory/items", tt.body, tt.caller)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				var got SuccessResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, MsgItemAddedSuccess, got.Message)
			}
		})
	}
}

func TestHandleUseItem(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "used",
			body:       `{"item_id": 1, "amount": 2}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "item not owned",
			body:       `{"item_id": 1, "amount": 2}`,
			serviceErr: domain.ErrItemNotOwned,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "not enough items",
			body:       `{"item_id": 1, "amount": 100}`,
			serviceErr: domain.ErrInsufficientAmount,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "zero amount fails validation",
			body:       `{"item_id": 1, "amount": 0}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeInventoryService{
				useFn: func(ctx context.Context, req inventory.UseItemRequest, user domain.UserInfo) error {
					assert.Equal(t, testUser.UserID, user.UserID)
					return tt.serviceErr
				},
			}

			rec := doRequest(t, inventoryRouter(svc), http.MethodPost, "/inventory/use", tt.body, &testUser)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				var got SuccessResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, MsgItemUsedSuccess, got.Message)
			}
		})
	}
}

func TestHandleGetInventoriesWithItem(t *testing.T) {
	t.Run("lists holders", func(t *testing.T) {
		svc := &fakeInventoryService{
			getAllWithFn: func(ctx context.Context, itemID int, actor domain.UserInfo) ([]domain.InventoryResponse, error) {
				assert.Equal(t, 1, itemID)
				return []domain.InventoryResponse{
					{UserID: 42, Items: []domain.InventoryItem{{ItemID: 1, Amount: 5}}},
					{UserID: 43, Items: []domain.InventoryItem{{ItemID: 1, Amount: 2}}},
				}, nil
			},
		}

		rec := doRequest(t, inventoryRouter(svc), http.MethodGet, "/items/1/inventories", "", &testAdmin)
		assert.Equal(t, http.StatusOK, rec.Code)

		var got []domain.InventoryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Len(t, got, 2)
	})

	t.Run("no holders returns empty array", func(t *testing.T) {
		svc := &fakeInventoryService{
			getAllWithFn: func(ctx context.Context, itemID int, actor domain.UserInfo) ([]domain.InventoryResponse, error) {
				return nil, nil
			},
		}

		rec := doRequest(t, inventoryRouter(svc), http.MethodGet, "/items/1/inventories", "", &testAdmin)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		svc := &fakeInventoryService{
			getAllWithFn: func(ctx context.Context, itemID int, actor domain.UserInfo) ([]domain.InventoryResponse, error) {
				return nil, domain.ErrNotAdmin
			},
		}

		rec := doRequest(t, inventoryRouter(svc), http.MethodGet, "/items/1/inventories", "", &testUser)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
