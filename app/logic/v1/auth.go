package v1

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/memochat-ai/memochat/app/core"
	"github.com/memochat-ai/memochat/pkg/auth"
	"github.com/memochat-ai/memochat/pkg/errors"
	"github.com/memochat-ai/memochat/pkg/security"
	"github.com/memochat-ai/memochat/pkg/types"
	"github.com/memochat-ai/memochat/pkg/utils"
)

const (
	TOKEN_CONTEXT_KEY = "__token_claims"
)

func InjectTokenClaim(c *gin.Context) (security.TokenClaims, bool) {
	value, exist := c.Get(TOKEN_CONTEXT_KEY)
	if !exist {
		return security.TokenClaims{}, false
	}
	claims, ok := value.(security.TokenClaims)
	return claims, ok
}

type AuthLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewAuthLogic(ctx context.Context, core *core.Core) *AuthLogic {
	return &AuthLogic{
		ctx:  ctx,
		core: core,
	}
}

// CreateSession 为 OAuth 回调换取的用户建立登录态，返回签名后的 JWT。
func (l *AuthLogic) CreateSession(user *auth.GithubUser) (string, error) {
	expiresAt := time.Now().AddDate(0, 0, l.core.Cfg().Auth.SessionTTLDays).Unix()
	session := types.Session{
		Token:     utils.GenRandomID(),
		UserName:  user.Name,
		UserEmail: user.Email,
		ExpiresAt: expiresAt,
	}

	if err := l.core.Store().SessionStore().Create(l.ctx, session); err != nil {
		return "", errors.New("AuthLogic.CreateSession.SessionStore.Create", errors.ERROR_INTERNAL, err)
	}

	claims := security.NewTokenClaims(session.Token, session.UserName, session.UserEmail, expiresAt)
	signed, err := security.GenerateJWT(claims, []byte(l.core.Cfg().Auth.SignKey))
	if err != nil {
		return "", errors.New("AuthLogic.CreateSession.GenerateJWT", errors.ERROR_INTERNAL, err)
	}
	return signed, nil
}

// VerifyToken 校验 JWT 并确认其背后的会话仍然存在且未过期。
func (l *AuthLogic) VerifyToken(tokenString string) (security.TokenClaims, error) {
	claims, err := security.ParseJWT(tokenString, []byte(l.core.Cfg().Auth.SignKey))
	if err != nil {
		return claims, errors.New("AuthLogic.VerifyToken.ParseJWT", errors.ERROR_UNAUTHORIZED, err).Code(http.StatusUnauthorized)
	}

	session, err := l.core.Store().SessionStore().GetSession(l.ctx, claims.User)
	if err != nil {
		if err == sql.ErrNoRows {
			return claims, errors.New("AuthLogic.VerifyToken.SessionStore.GetSession", errors.ERROR_UNAUTHORIZED, err).Code(http.StatusUnauthorized)
		}
		return claims, errors.New("AuthLogic.VerifyToken.SessionStore.GetSession", errors.ERROR_INTERNAL, err)
	}

	if session.ExpiresAt < time.Now().Unix() {
		return claims, errors.New("AuthLogic.VerifyToken.session.expired", errors.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized)
	}

	return claims, nil
}

func (l *AuthLogic) Logout(sessionToken string) error {
	if err := l.core.Store().SessionStore().Delete(l.ctx, sessionToken); err != nil {
		return errors.New("AuthLogic.Logout.SessionStore.Delete", errors.ERROR_INTERNAL, err)
	}
	return nil
}
