package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"usedmarket/internal/events"
	"usedmarket/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBookingService_Create(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name        string
		body        model.Document
		setupMock   func(*MockBookingRepository)
		expectError error
		errorMsg    string
		published   int
	}{
		{
			name: "Success",
			body: model.Document{"email": "b@x.com", "name": "Phone", "price": 100.0, "_id": "ignored"},
			setupMock: func(repo *MockBookingRepository) {
				repo.On("Create", ctx, model.Document{"email": "b@x.com", "name": "Phone", "price": 100.0}).
					Return(&model.InsertResult{Acknowledged: true, InsertedID: "b1"}, nil)
			},
			published: 1,
		},
		{
			name: "Duplicate booking",
			body: model.Document{"email": "b@x.com", "name": "Phone"},
			setupMock: func(repo *MockBookingRepository) {
				repo.On("Create", ctx, mock.Anything).
					Return(nil, fmt.Errorf("insert into bookings: %w", model.ErrDuplicate))
			},
			expectError: model.ErrBookingExists,
			errorMsg:    "You already have a booking on Phone",
		},
		{
			name:        "Missing email",
			body:        model.Document{"name": "Phone"},
			setupMock:   func(repo *MockBookingRepository) {},
			expectError: model.ErrMissingField,
			errorMsg:    "email is required",
		},
		{
			name:        "Missing name",
			body:        model.Document{"email": "b@x.com"},
			setupMock:   func(repo *MockBookingRepository) {},
			expectError: model.ErrMissingField,
			errorMsg:    "name is required",
		},
		{
			name: "Repository error",
			body: model.Document{"email": "b@x.com", "name": "Phone"},
			setupMock: func(repo *MockBookingRepository) {
				repo.On("Create", ctx, mock.Anything).Return(nil, errors.New("database error"))
			},
			errorMsg: "failed to create booking",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockBookingRepository)
			tt.setupMock(repo)
			pub := &recordingPublisher{}

			res, err := NewBookingService(repo, pub, logger).Create(ctx, tt.body)

			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Nil(t, res)
				assert.Contains(t, err.Error(), tt.errorMsg)
				if tt.expectError != nil {
					assert.ErrorIs(t, err, tt.expectError)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, "b1", res.InsertedID)
			}

			require.Len(t, pub.events, tt.published)
			if tt.published > 0 {
				assert.Equal(t, events.TypeBookingCreated, pub.events[0].Type)
				assert.Equal(t, "b1", pub.events[0].Key)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestBookingService_Create_PublishFailureIgnored(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBookingRepository)
	repo.On("Create", ctx, mock.Anything).Return(&model.InsertResult{Acknowledged: true, InsertedID: "b1"}, nil)
	pub := &recordingPublisher{err: errors.New("broker down")}

	res, err := NewBookingService(repo, pub, zerolog.Nop()).Create(ctx, model.Document{"email": "b@x.com", "name": "Phone"})
	require.NoError(t, err)
	assert.Equal(t, "b1", res.InsertedID)
	assert.Len(t, pub.events, 1)
}

func TestBookingService_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBookingRepository)
	repo.On("GetByID", ctx, "b1").Return(model.Document{"_id": "b1", "name": "Phone"}, nil)
	repo.On("GetByID", ctx, "bad").Return(nil, model.ErrInvalidID)
	repo.On("GetByID", ctx, "b2").Return(nil, errors.New("database error"))

	service := NewBookingService(repo, events.NewNopPublisher(), zerolog.Nop())

	got, err := service.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Phone", got["name"])

	_, err = service.GetByID(ctx, "bad")
	assert.ErrorIs(t, err, model.ErrInvalidID)

	_, err = service.GetByID(ctx, "b2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get booking")
}

func TestBookingService_ListForEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Own bookings", func(t *testing.T) {
		repo := new(MockBookingRepository)
		repo.On("FindByEmail", ctx, "b@x.com").Return([]model.Document{{"name": "Phone"}}, nil)

		got, err := NewBookingService(repo, events.NewNopPublisher(), zerolog.Nop()).ListForEmail(ctx, "b@x.com", "b@x.com")
		require.NoError(t, err)
		assert.Len(t, got, 1)
		repo.AssertExpectations(t)
	})

	t.Run("Someone else's bookings", func(t *testing.T) {
		repo := new(MockBookingRepository)

		_, err := NewBookingService(repo, events.NewNopPublisher(), zerolog.Nop()).ListForEmail(ctx, "a@x.com", "b@x.com")
		assert.ErrorIs(t, err, model.ErrForbidden)
		repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}
