package account

import (
	"context"
	"testing"

	"stock_simulator/internal/db"
	"stock_simulator/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) *Service {
	t.Helper()
	gdb, err := db.OpenInMemory()
	require.NoError(t, err)
	svc := New(gdb, decimal.NewFromInt(10000))
	svc.HashCost = bcrypt.MinCost
	return svc
}

func TestRegister(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "hunter2", "hunter2")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "10000", user.Cash.String())
	assert.NotEqual(t, "hunter2", user.Password, "raw password must not be stored")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter2")))
}

func TestRegisterValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	cases := []struct {
		name                             string
		username, password, confirmation string
		field                            string
	}{
		{"missing username", "", "pw", "pw", "username"},
		{"missing password", "bob", "", "", "password"},
		{"missing confirmation", "bob", "pw", "", "confirmation"},
		{"mismatch", "bob", "pw", "PW", "confirmation"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.password, tc.confirmation)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestRegisterDuplicateKeepsOriginal(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "first", "first")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "second", "second")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	// Original credentials still work, the new ones do not
	_, err = svc.Authenticate(ctx, "alice", "first")
	assert.NoError(t, err)
	_, err = svc.Authenticate(ctx, "alice", "second")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUsernamesAreCaseSensitive(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw", "pw")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "Alice", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticateGenericFailure(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw", "pw")
	require.NoError(t, err)

	_, unknownUser := svc.Authenticate(ctx, "nobody", "pw")
	_, wrongPassword := svc.Authenticate(ctx, "alice", "nope")

	assert.ErrorIs(t, unknownUser, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.Equal(t, unknownUser.Error(), wrongPassword.Error())
}

func TestAuthenticateRequiresFields(t *testing.T) {
	svc := newService(t)

	var verr *domain.ValidationError
	_, err := svc.Authenticate(context.Background(), "", "pw")
	assert.ErrorAs(t, err, &verr)
	_, err = svc.Authenticate(context.Background(), "alice", "")
	assert.ErrorAs(t, err, &verr)
}
