package checkers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockDB struct {
	mock.Mock
}

func (m *mockDB) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockDB) Versions(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func TestPostgresChecker(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
		current int64
		latest  int64
		verErr  error
		wantErr string
	}{
		{name: "migrated", current: 4, latest: 4},
		{name: "ping fails", pingErr: errors.New("connection refused"), wantErr: "connection refused"},
		{name: "pending migrations", current: 2, latest: 4, wantErr: "schema at version 2, want 4"},
		{name: "version table unreadable", verErr: errors.New("read schema version"), wantErr: "read schema version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(mockDB)
			db.On("Ping", mock.Anything).Return(tt.pingErr)
			db.On("Versions", mock.Anything).Return(tt.current, tt.latest, tt.verErr).Maybe()

			ch := NewPostgresChecker(db, db)
			assert.Equal(t, "postgres", ch.Name())
			err := ch.Check(context.Background())
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
			if tt.pingErr != nil {
				db.AssertNotCalled(t, "Versions", mock.Anything)
			}
		})
	}
}
