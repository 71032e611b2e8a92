package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"homeserve/internal/apperr"
	"homeserve/internal/core/auth"
	"homeserve/internal/domain"
)

func testJWTer() *auth.JWTer {
	return &auth.JWTer{Secret: []byte("test-secret"), Issuer: "homeserve-test", TTL: time.Hour}
}

func newIdentity(st *fakeStore) *IdentityService {
	return NewIdentityService(&fakeUserRepo{st: st}, testJWTer(), zap.NewNop())
}

func TestRegisterDefaultsToHomeowner(t *testing.T) {
	svc := newIdentity(newFakeStore())

	res, err := svc.Register(RegisterInput{
		Email:     "John@Example.com",
		Password:  "password123",
		FirstName: "John",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleHomeowner, res.User.Role)
	assert.Equal(t, "john@example.com", res.User.Email)
	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.User.PasswordHash)
	assert.NotEqual(t, "password123", res.User.PasswordHash)

	claims, err := testJWTer().Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UID)
	assert.Equal(t, domain.RoleHomeowner, claims.Role)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc := newIdentity(newFakeStore())

	in := RegisterInput{Email: "jane@example.com", Password: "password123", FirstName: "Jane", LastName: "Smith"}
	_, err := svc.Register(in)
	require.NoError(t, err)

	_, err = svc.Register(in)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc := newIdentity(newFakeStore())
	_, err := svc.Register(RegisterInput{
		Email: "root@example.com", Password: "password123",
		FirstName: "Root", LastName: "User", Role: domain.RoleAdmin,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newIdentity(newFakeStore())
	_, err := svc.Register(RegisterInput{
		Email: "mike@example.com", Password: "password123",
		FirstName: "Mike", LastName: "Johnson", Role: domain.RoleProvider,
	})
	require.NoError(t, err)

	_, errUnknown := svc.Login(LoginInput{Email: "nobody@example.com", Password: "password123"})
	_, errWrongPw := svc.Login(LoginInput{Email: "mike@example.com", Password: "wrong-password"})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(errUnknown))
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(errWrongPw))
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestLoginSuccess(t *testing.T) {
	svc := newIdentity(newFakeStore())
	_, err := svc.Register(RegisterInput{
		Email: "sarah@example.com", Password: "password123",
		FirstName: "Sarah", LastName: "Williams", Role: domain.RoleProvider,
	})
	require.NoError(t, err)

	res, err := svc.Login(LoginInput{Email: "sarah@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleProvider, res.User.Role)
	assert.NotEmpty(t, res.Token)
}

func TestUpdateProfileMergesAllowedFieldsOnly(t *testing.T) {
	st := newFakeStore()
	svc := newIdentity(st)
	res, err := svc.Register(RegisterInput{
		Email: "alice@example.com", Password: "password123",
		FirstName: "Alice", LastName: "Brown",
	})
	require.NoError(t, err)

	phone := "555-0101"
	city := "Springfield"
	u, err := svc.UpdateProfile(res.User.ID, domain.ProfileUpdate{Phone: &phone, City: &city})
	require.NoError(t, err)
	assert.Equal(t, "555-0101", u.Phone)
	assert.Equal(t, "Springfield", u.City)
	// Untouched fields survive the merge.
	assert.Equal(t, "Alice", u.FirstName)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, res.User.PasswordHash, u.PasswordHash)
}

func TestCurrentUnknownUserIsUnauthenticated(t *testing.T) {
	svc := newIdentity(newFakeStore())
	_, err := svc.Current("missing-id")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}
