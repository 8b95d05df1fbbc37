package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSigner() *Signer {
	return &Signer{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "gestion-magasin",
		AccessTTL:     10 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	s := newSigner()
	store := int64(7)
	tok, err := s.GenerateAccess(AccessInput{
		UserID:  42,
		Email:   "ana@magasin.fr",
		Role:    RoleClaim{ID: 3, Name: "store manager", Permissions: []string{"READ_PRODUCT"}},
		StoreID: &store,
		Aisles:  []int64{1, 2},
	})
	require.NoError(t, err)

	claims, err := s.ParseAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "store manager", claims.Role.Name)
	assert.Equal(t, []string{"READ_PRODUCT"}, claims.Role.Permissions)
	require.NotNil(t, claims.Store)
	assert.Equal(t, int64(7), claims.Store.ID)
	assert.Equal(t, []int64{1, 2}, claims.Aisles)
}

func TestAccessToken_NullStore(t *testing.T) {
	s := newSigner()
	tok, err := s.GenerateAccess(AccessInput{UserID: 1, Role: RoleClaim{ID: 1, Name: "super admin"}})
	require.NoError(t, err)
	claims, err := s.ParseAccess(tok)
	require.NoError(t, err)
	assert.Nil(t, claims.Store)
}

func TestAccessToken_Expired(t *testing.T) {
	s := newSigner()
	issued := time.Now().Add(-time.Hour)
	s.Now = func() time.Time { return issued }
	tok, err := s.GenerateAccess(AccessInput{UserID: 1})
	require.NoError(t, err)

	s.Now = nil
	_, err = s.ParseAccess(tok)
	assert.Error(t, err)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	s := newSigner()
	tok, err := s.GenerateAccess(AccessInput{UserID: 1})
	require.NoError(t, err)

	other := newSigner()
	other.AccessSecret = "otro"
	_, err = other.ParseAccess(tok)
	assert.Error(t, err)
}

func TestRefreshToken_SeparateSecret(t *testing.T) {
	s := newSigner()
	refresh, err := s.GenerateRefresh(9)
	require.NoError(t, err)

	id, err := s.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)

	// un refresh token no sirve como access token
	_, err = s.ParseAccess(refresh)
	assert.Error(t, err)
}

func TestRefreshToken_UniquePerIssue(t *testing.T) {
	s := newSigner()
	a, err := s.GenerateRefresh(9)
	require.NoError(t, err)
	b, err := s.GenerateRefresh(9)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, HashRefreshToken(a), HashRefreshToken(b))
}

func TestEmptySecret(t *testing.T) {
	s := &Signer{}
	_, err := s.GenerateAccess(AccessInput{UserID: 1})
	assert.ErrorIs(t, err, ErrEmptySecret)
	_, err = s.GenerateRefresh(1)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestHashRefreshToken(t *testing.T) {
	h := HashRefreshToken("abc")
	assert.Len(t, h, 64)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", h)
}
