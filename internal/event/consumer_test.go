package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/gameinventory/internal/domain"
)

// fakeProvisioner records provisioning calls, optionally failing
type fakeProvisioner struct {
	created []int
	err     error
}

func (f *fakeProvisioner) CreateInventory(ctx context.Context, user domain.UserInfo) (*domain.Inventory, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, user.UserID)
	return &domain.Inventory{ID: len(f.created), UserID: user.UserID}, nil
}

func TestHandleMessage(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		provisionID []int
	}{
		{
			name:        "valid event provisions inventory",
			payload:     `{"user_id": 42, "role": "user"}`,
			provisionID: []int{42},
		},
		{
			name:    "malformed payload skipped",
			payload: `{not json`,
		},
		{
			name:    "missing user_id skipped",
			payload: `{"role": "user"}`,
		},
		{
			name:    "zero user_id skipped",
			payload: `{"user_id": 0, "role": "user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prov := &fakeProvisioner{}
			c := &Consumer{inventories: prov, topic: "test-topic"}

			c.handleMessage(context.Background(), []byte(tt.payload))

			assert.Equal(t, tt.provisionID, prov.created)
		})
	}
}

func TestHandleMessage_DuplicateUserTolerated(t *testing.T) {
	prov := &fakeProvisioner{err: domain.ErrInventoryAlreadyExists}
	c := &Consumer{inventories: prov, topic: "test-topic"}

	// A replayed fact must not crash or error the loop
	c.handleMessage(context.Background(), []byte(`{"user_id": 42, "role": "user"}`))
	assert.Empty(t, prov.created)
}

func TestHandleMessage_ProvisionFailure(t *testing.T) {
	prov := &fakeProvisioner{err: domain.ErrDatabase}
	c := &Consumer{inventories: prov, topic: "test-topic"}

	// Store failures are logged and counted; the loop keeps going
	c.handleMessage(context.Background(), []byte(`{"user_id": 42, "role": "user"}`))
	assert.Empty(t, prov.created)
}
