package security

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenClaims 登录态声明，由 OAuth 回调签发
type TokenClaims struct {
	User       string `json:"u"` // 用户唯一标识（session token）
	Name       string `json:"n"`
	Email      string `json:"e"`
	ExpireTime int64  `json:"exp"` // 过期时间 时间戳
	NotBefore  int64  `json:"nbf"` // 生效时间 时间戳
}

func NewTokenClaims(sessionToken, name, email string, expireTime int64) TokenClaims {
	return TokenClaims{
		User:       sessionToken,
		Name:       name,
		Email:      email,
		ExpireTime: expireTime,
		NotBefore:  time.Now().Unix() - 1,
	}
}

func (t TokenClaims) Valid() error {
	now := time.Now().Unix()
	if t.ExpireTime != 0 && now > t.ExpireTime {
		return errors.New("token expired")
	}
	if t.NotBefore != 0 && now < t.NotBefore {
		return errors.New("token not active yet")
	}
	return nil
}

func GenerateJWT(info TokenClaims, signBytes []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, info)
	return token.SignedString(signBytes)
}

func ParseJWT(tokenString string, signBytes []byte) (TokenClaims, error) {
	var claims TokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return signBytes, nil
	})
	if err != nil {
		return claims, err
	}
	if !token.Valid {
		return claims, errors.New("invalid token")
	}
	return claims, nil
}
