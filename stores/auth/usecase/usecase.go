package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/ethereum"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/domain/keys"
	"github.com/x-xyz/launchpad/service/redis"
)

const (
	DefaultMsgTemplate = "Sign this message to log in to the launchpad.\n\nNonce: %s"

	nonceTTL = 10 * time.Minute
	tokenTTL = 24 * time.Hour
)

type Cfg struct {
	JwtSecret string
	Redis     redis.Service
	// MsgTemplate is the signed message, %s is replaced with the nonce
	MsgTemplate string
	Admins      []domain.Address
}

type impl struct {
	jwtSecret   []byte
	redis       redis.Service
	msgTemplate string
	admins      map[domain.Address]bool
}

func New(cfg *Cfg) domain.AuthUsecase {
	im := &impl{
		jwtSecret:   []byte(cfg.JwtSecret),
		redis:       cfg.Redis,
		msgTemplate: cfg.MsgTemplate,
		admins:      map[domain.Address]bool{},
	}
	if im.msgTemplate == "" {
		im.msgTemplate = DefaultMsgTemplate
	}
	for _, a := range cfg.Admins {
		im.admins[a.ToLower()] = true
	}
	return im
}

func nonceKey(address domain.Address) string {
	return keys.RedisKey(keys.PfxNonce, address.ToLowerStr())
}

func (im *impl) IssueNonce(ctx ctx.Ctx, address domain.Address) (*domain.LoginNonce, error) {
	nonce := uuid.NewString()
	if err := im.redis.Set(ctx, nonceKey(address), []byte(nonce), nonceTTL); err != nil {
		ctx.WithFields(log.Fields{"err": err, "address": address}).Error("redis.Set failed")
		return nil, err
	}
	return &domain.LoginNonce{
		Address: address.ToLower(),
		Nonce:   nonce,
		Message: fmt.Sprintf(im.msgTemplate, nonce),
	}, nil
}

func (im *impl) Login(ctx ctx.Ctx, address domain.Address, signature string) (string, error) {
	// a nonce is good for one attempt only
	nonce, err := im.redis.GetDel(ctx, nonceKey(address))
	if err == redis.ErrNotFound {
		return "", domain.ErrInvalidSignature
	} else if err != nil {
		ctx.WithFields(log.Fields{"err": err, "address": address}).Error("redis.GetDel failed")
		return "", err
	}

	msg := fmt.Sprintf(im.msgTemplate, string(nonce))
	if ok, err := ethereum.ValidateMsgSignature([]byte(msg), signature, string(address)); err != nil {
		ctx.WithFields(log.Fields{"err": err, "address": address}).Info("ValidateMsgSignature failed")
		return "", domain.ErrInvalidSignature
	} else if !ok {
		return "", domain.ErrInvalidSignature
	}

	return im.SignToken(ctx, address)
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address) (string, error) {
	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		Admin:   im.admins[address.ToLower()],
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (*domain.JwtCustomClaims, error) {
	token, err := jwt.ParseWithClaims(strings.TrimSpace(str), &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, domain.ErrInvalidSignature
}
