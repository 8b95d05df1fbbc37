package jwt

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrEmptySecret se devuelve si se intenta firmar o verificar sin secreto.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// RoleClaim rol embebido en el access token (permite autorizar sin consultar la DB).
type RoleClaim struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// StoreClaim tienda del usuario; null para super admin sin tienda seleccionada.
type StoreClaim struct {
	ID int64 `json:"id"`
}

// AccessClaims claims estándar más el contexto del usuario {id, role, store}.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID int64       `json:"id"`
	Email  string      `json:"email"`
	Role   RoleClaim   `json:"role"`
	Store  *StoreClaim `json:"store"`
	Aisles []int64     `json:"aisles"`
}

// AccessInput datos del usuario que viajan en el access token.
type AccessInput struct {
	UserID  int64
	Email   string
	Role    RoleClaim
	StoreID *int64
	Aisles  []int64
}

// Signer firma y verifica ambos tipos de token. Access y refresh usan secretos distintos.
type Signer struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	// Now reloj inyectable (tests); nil = time.Now.
	Now func() time.Time
}

func (s *Signer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GenerateAccess firma un access token HS256 con el contexto del usuario.
func (s *Signer) GenerateAccess(in AccessInput) (string, error) {
	if s.AccessSecret == "" {
		return "", ErrEmptySecret
	}
	now := s.now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Subject:   strconv.FormatInt(in.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.AccessTTL)),
		},
		UserID: in.UserID,
		Email:  in.Email,
		Role:   in.Role,
		Aisles: in.Aisles,
	}
	if claims.Role.Permissions == nil {
		claims.Role.Permissions = []string{}
	}
	if claims.Aisles == nil {
		claims.Aisles = []int64{}
	}
	if in.StoreID != nil {
		claims.Store = &StoreClaim{ID: *in.StoreID}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.AccessSecret))
}

// ParseAccess valida firma y expiración y devuelve los claims.
func (s *Signer) ParseAccess(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.parse(s.AccessSecret, tokenString, claims); err != nil {
		return nil, err
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("claims inválidos: id ausente")
	}
	return claims, nil
}

// GenerateRefresh firma un refresh token opaco para el cliente: solo sub = id y jti aleatorio.
func (s *Signer) GenerateRefresh(userID int64) (string, error) {
	if s.RefreshSecret == "" {
		return "", ErrEmptySecret
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.Issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.RefreshTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.RefreshSecret))
}

// ParseRefresh valida el refresh token y devuelve el id del usuario (sub).
func (s *Signer) ParseRefresh(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	if err := s.parse(s.RefreshSecret, tokenString, claims); err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("claims inválidos: sub %q", claims.Subject)
	}
	return id, nil
}

func (s *Signer) parse(secret, tokenString string, claims jwt.Claims) error {
	if secret == "" {
		return ErrEmptySecret
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.Now != nil {
		opts = append(opts, jwt.WithTimeFunc(s.Now))
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("claims inválidos")
	}
	return nil
}

// HashRefreshToken sha256 hex del token; es lo único que se persiste.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
