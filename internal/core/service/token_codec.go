package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gameforge/auth-core/internal/core/domain"
)

// TokenCodec signs client credentials as HS256 JWTs. Tokens deliberately
// carry no exp claim: invalidation works by bumping the client's stored
// version, which makes every outstanding token stale at once.
type TokenCodec struct {
	secret []byte
}

func NewTokenCodec(secret string) *TokenCodec {
	if secret == "" {
		panic("token codec: empty signing secret")
	}
	return &TokenCodec{secret: []byte(secret)}
}

func (tc *TokenCodec) Sign(claims domain.ClientClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"client_id": claims.ClientID,
		"version":   claims.Version,
	})
	return t.SignedString(tc.secret)
}

func (tc *TokenCodec) Verify(token string) (domain.ClientClaims, error) {
	mc := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return tc.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return domain.ClientClaims{}, domain.ErrTokenSignature
		}
		return domain.ClientClaims{}, domain.ErrTokenMalformed
	}
	if !tkn.Valid {
		return domain.ClientClaims{}, domain.ErrTokenSignature
	}

	clientID, _ := mc["client_id"].(string)
	// JSON numbers decode as float64.
	version, ok := mc["version"].(float64)
	if clientID == "" || !ok {
		return domain.ClientClaims{}, domain.ErrTokenMalformed
	}

	return domain.ClientClaims{ClientID: clientID, Version: int(version)}, nil
}
