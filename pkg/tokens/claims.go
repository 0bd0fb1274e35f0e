// Package tokens signs and parses the HS256 session tokens shared by the auth
// and inventory services.
package tokens

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims identify the signed-in user. Subject is the user id.
type AccessClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// RefreshClaims carry the refresh token's jti, which the auth store tracks.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

var ErrInvalidToken = jwt.ErrTokenInvalidClaims

var hs256 = jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})

func sign(claims jwt.Claims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parse[C jwt.Claims](raw string, secret []byte, claims C) (C, error) {
	tkn, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, hs256)
	if err != nil {
		var zero C
		return zero, fmt.Errorf("parse token: %w", err)
	}
	if !tkn.Valid {
		var zero C
		return zero, ErrInvalidToken
	}
	return claims, nil
}

func SignAccess(claims AccessClaims, secret []byte) (string, error) {
	return sign(claims, secret)
}

func SignRefresh(claims RefreshClaims, secret []byte) (string, error) {
	return sign(claims, secret)
}

func AccessClaimsFromToken(raw string, secret []byte) (*AccessClaims, error) {
	return parse(raw, secret, &AccessClaims{})
}

func RefreshClaimsFromToken(raw string, secret []byte) (*RefreshClaims, error) {
	return parse(raw, secret, &RefreshClaims{})
}
