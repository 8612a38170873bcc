package venues_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"venues-backend/store"
	"venues-backend/venues"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockStore is a testify mock of venues.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Put(ctx context.Context, v venues.Venue) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockStore) Get(ctx context.Context, id string) (venues.Venue, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(venues.Venue), args.Bool(1), args.Error(2)
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) ScanAll(ctx context.Context) ([]venues.Venue, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]venues.Venue)
	return list, args.Error(1)
}

var mainHall = venues.Input{
	VenueDescription:    aws.String("Main Hall"),
	AccountID:           aws.String("a1"),
	AccountDenomination: aws.String("USD"),
	AccountDescription:  aws.String("ops"),
}

func newMemoryService() (*venues.Service, *store.MemoryStore) {
	s := store.NewMemoryStore()
	return venues.NewService(s, zap.NewNop()), s
}

func TestService_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService()

	created, err := svc.Create(ctx, mainHall)
	require.NoError(t, err)
	assert.NotEmpty(t, created.VenueID)
	assert.Equal(t, "Main Hall", created.VenueDescription)
	assert.Equal(t, "a1", created.AccountID)
	assert.Equal(t, "USD", created.AccountDenomination)
	assert.Equal(t, "ops", created.AccountDescription)

	got, err := svc.Get(ctx, created.VenueID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestService_Create_AcceptsEmptyStrings(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService()

	in := mainHall
	in.VenueDescription = aws.String("")
	in.AccountDescription = aws.String("")

	created, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Empty(t, created.VenueDescription)
	assert.Empty(t, created.AccountDescription)

	got, err := svc.Get(ctx, created.VenueID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestService_Create_GeneratesDistinctIDs(t *testing.T) {
	ctx := context.Background()
	svc, s := newMemoryService()

	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		v, err := svc.Create(ctx, mainHall)
		require.NoError(t, err)
		seen[v.VenueID] = struct{}{}
	}
	assert.Len(t, seen, 20)
	assert.Equal(t, 20, s.Len())
}

func TestService_Create_UsesIDFunc(t *testing.T) {
	svc := venues.NewService(store.NewMemoryStore(), nil, venues.WithIDFunc(func() string { return "fixed-id" }))

	v, err := svc.Create(context.Background(), mainHall)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", v.VenueID)
}

func TestService_Create_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		input   venues.Input
		message string
	}{
		{
			name:    "empty",
			input:   venues.Input{},
			message: "venueDescription is required; accountID is required; accountDenomination is required; accountDescription is required",
		},
		{
			name: "missing accountID",
			input: venues.Input{
				VenueDescription:    aws.String("Main Hall"),
				AccountDenomination: aws.String("USD"),
				AccountDescription:  aws.String("ops"),
			},
			message: "accountID is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockStore)
			svc := venues.NewService(mockStore, zap.NewNop())

			_, err := svc.Create(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, venues.IsInvalidInput(err))
			assert.Equal(t, tt.message, err.Error())
			mockStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Create_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStore)
	mockStore.On("Put", ctx, mock.AnythingOfType("venues.Venue")).Return(errors.New("network down"))
	svc := venues.NewService(mockStore, zap.NewNop())

	_, err := svc.Create(ctx, mainHall)
	require.Error(t, err)
	assert.True(t, venues.IsStoreUnavailable(err))
	assert.Equal(t, "failed to create venue: network down", err.Error())
	mockStore.AssertExpectations(t)
}

func TestService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService()

	_, err := svc.Get(ctx, "never-written")
	assert.True(t, venues.IsNotFound(err))
	assert.Equal(t, "Venue with ID never-written not found", err.Error())

	_, err = svc.Update(ctx, "never-written", mainHall)
	assert.True(t, venues.IsNotFound(err))

	err = svc.Delete(ctx, "never-written")
	assert.True(t, venues.IsNotFound(err))
}

func TestService_Update_NeverCreates(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStore)
	mockStore.On("Get", ctx, "absent").Return(venues.Venue{}, false, nil)
	svc := venues.NewService(mockStore, zap.NewNop())

	_, err := svc.Update(ctx, "absent", mainHall)
	require.Error(t, err)
	assert.Equal(t, venues.KindNotFound, venues.KindOf(err))
	mockStore.AssertExpectations(t)
	mockStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestService_Update_ReplacesWholeRecord(t *testing.T) {
	ctx := context.Background()
	svc, s := newMemoryService()

	created, err := svc.Create(ctx, mainHall)
	require.NoError(t, err)

	replacement := venues.Input{
		VenueDescription:    aws.String("Main Hall 2"),
		AccountID:           aws.String("a2"),
		AccountDenomination: aws.String("EUR"),
		AccountDescription:  aws.String("finance"),
	}
	updated, err := svc.Update(ctx, created.VenueID, replacement)
	require.NoError(t, err)
	assert.Equal(t, venues.Venue{
		VenueID:             created.VenueID,
		VenueDescription:    "Main Hall 2",
		AccountID:           "a2",
		AccountDenomination: "EUR",
		AccountDescription:  "finance",
	}, updated)

	got, err := svc.Get(ctx, created.VenueID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.Equal(t, 1, s.Len())
}

func TestService_Update_InvalidInputSkipsStore(t *testing.T) {
	mockStore := new(MockStore)
	svc := venues.NewService(mockStore, zap.NewNop())

	_, err := svc.Update(context.Background(), "id", venues.Input{VenueDescription: aws.String("only this")})
	assert.True(t, venues.IsInvalidInput(err))
	mockStore.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	mockStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestService_Update_ChecksBeforeWriting(t *testing.T) {
	ctx := context.Background()
	existing := venues.Venue{VenueID: "v1", VenueDescription: "old", AccountID: "a", AccountDenomination: "b", AccountDescription: "c"}

	mockStore := new(MockStore)
	getCall := mockStore.On("Get", ctx, "v1").Return(existing, true, nil).Once()
	mockStore.On("Put", ctx, venues.Venue{
		VenueID:             "v1",
		VenueDescription:    "Main Hall",
		AccountID:           "a1",
		AccountDenomination: "USD",
		AccountDescription:  "ops",
	}).Return(nil).Once().NotBefore(getCall)
	svc := venues.NewService(mockStore, zap.NewNop())

	_, err := svc.Update(ctx, "v1", mainHall)
	require.NoError(t, err)
	mockStore.AssertExpectations(t)
}

func TestService_Delete_IsNotIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService()

	created, err := svc.Create(ctx, mainHall)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.VenueID))

	_, err = svc.Get(ctx, created.VenueID)
	assert.True(t, venues.IsNotFound(err))

	err = svc.Delete(ctx, created.VenueID)
	assert.True(t, venues.IsNotFound(err))
}

func TestService_Delete_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStore)
	mockStore.On("Get", ctx, "v1").Return(venues.Venue{VenueID: "v1"}, true, nil)
	mockStore.On("Delete", ctx, "v1").Return(errors.New("timeout"))
	svc := venues.NewService(mockStore, zap.NewNop())

	err := svc.Delete(ctx, "v1")
	assert.True(t, venues.IsStoreUnavailable(err))
	assert.Equal(t, "failed to delete venue: timeout", err.Error())
	mockStore.AssertExpectations(t)
}

func TestService_Get_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("connection reset")
	mockStore := new(MockStore)
	mockStore.On("Get", ctx, "v1").Return(venues.Venue{}, false, storeErr)
	svc := venues.NewService(mockStore, zap.NewNop())

	_, err := svc.Get(ctx, "v1")
	assert.True(t, venues.IsStoreUnavailable(err))
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, "failed to retrieve venue: connection reset", err.Error())
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	var created []venues.Venue
	for i := 0; i < 3; i++ {
		in := mainHall
		in.VenueDescription = aws.String(fmt.Sprintf("Hall %d", i))
		v, err := svc.Create(ctx, in)
		require.NoError(t, err)
		created = append(created, v)
	}

	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, created, list)
}

func TestService_List_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStore)
	mockStore.On("ScanAll", ctx).Return(nil, errors.New("throttled"))
	svc := venues.NewService(mockStore, zap.NewNop())

	list, err := svc.List(ctx)
	assert.Nil(t, list)
	assert.True(t, venues.IsStoreUnavailable(err))
	assert.Equal(t, "failed to retrieve venues: throttled", err.Error())
}
