package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/x-xyz/launchpad/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"address"`
	Admin   bool   `json:"admin,omitempty"`
	jwt.StandardClaims
}

type LoginNonce struct {
	Address Address `json:"address"`
	Nonce   string  `json:"nonce"`
	Message string  `json:"message"`
}

type AuthUsecase interface {
	// IssueNonce creates a one-time nonce the wallet signs to prove ownership
	IssueNonce(ctx ctx.Ctx, address Address) (*LoginNonce, error)
	// Login checks the personal signature of the nonce message and returns a jwt
	Login(ctx ctx.Ctx, address Address, signature string) (string, error)
	SignToken(ctx ctx.Ctx, address Address) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (*JwtCustomClaims, error)
}
