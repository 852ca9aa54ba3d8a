package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/memochat-ai/memochat/app/logic/v1"
	"github.com/memochat-ai/memochat/app/response"
	"github.com/memochat-ai/memochat/pkg/errors"
	"github.com/memochat-ai/memochat/pkg/utils"
)

const (
	OAUTH_STATE_COOKIE = "memochat_oauth_state"
	TOKEN_COOKIE       = "memochat_token"
)

// LoginWithGithub 跳转到 Github 授权页，state 随机生成并种在 cookie 里防 CSRF。
func (s *HttpSrv) LoginWithGithub(c *gin.Context) {
	state := utils.RandomStr(16)
	c.SetCookie(OAUTH_STATE_COOKIE, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, s.Core.OAuth().AuthCodeURL(state))
}

type LoginCallbackResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginWithGithubCallback 用授权码换取用户信息并建立会话，返回 JWT。
func (s *HttpSrv) LoginWithGithubCallback(c *gin.Context) {
	state, err := c.Cookie(OAUTH_STATE_COOKIE)
	if err != nil || state == "" || state != c.Query("state") {
		response.APIError(c, errors.New("handler.LoginWithGithubCallback.state", errors.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized))
		return
	}

	code := c.Query("code")
	if code == "" {
		response.APIError(c, errors.New("handler.LoginWithGithubCallback.code", errors.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	user, err := s.Core.OAuth().ExchangeUser(c, code)
	if err != nil {
		response.APIError(c, errors.New("handler.LoginWithGithubCallback.ExchangeUser", errors.ERROR_UNAUTHORIZED, err).Code(http.StatusUnauthorized))
		return
	}

	token, err := v1.NewAuthLogic(c, s.Core).CreateSession(user)
	if err != nil {
		response.APIError(c, err)
		return
	}

	c.SetCookie(TOKEN_COOKIE, token, s.Core.Cfg().Auth.SessionTTLDays*24*3600, "/", "", false, true)
	response.APISuccess(c, LoginCallbackResponse{
		Token: token,
		Name:  user.Name,
		Email: user.Email,
	})
}

// Logout 删除当前会话。
func (s *HttpSrv) Logout(c *gin.Context) {
	claims, ok := v1.InjectTokenClaim(c)
	if !ok {
		response.APIError(c, errors.New("handler.Logout", errors.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized))
		return
	}

	if err := v1.NewAuthLogic(c, s.Core).Logout(claims.User); err != nil {
		response.APIError(c, err)
		return
	}

	c.SetCookie(TOKEN_COOKIE, "", -1, "/", "", false, true)
	response.APISuccess(c, nil)
}
