package pages

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/interview-assistant/internal/api"
)

// Auth drives the sign-in page.
type Auth struct {
	base
}

// NewAuth creates the sign-in controller.
func NewAuth(d Deps) *Auth {
	return &Auth{base{d}}
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Confirm  string
}

// Login exchanges credentials for a token, stores the session and sends
// the user to the home page after LoginRedirectDelay.
func (a *Auth) Login(ctx context.Context, username, password string) (*Result, error) {
	tok, err := a.API.Login(ctx, username, password)
	if err != nil {
		if cause, ok := transportCause(err); ok {
			return nil, fail(err, "登录失败: "+cause)
		}
		return nil, fail(err, detail(err, "登录失败"))
	}

	if err := a.Sessions.Login(ctx, tok.AccessToken, username); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	a.navigate(ctx, Navigation{Page: PageHome, After: LoginRedirectDelay})
	return &Result{Status: "登录成功！正在跳转..."}, nil
}

// Register creates an account and moves to the login tab, with the
// username prefilled, after RegisterRedirectDelay.
func (a *Auth) Register(ctx context.Context, in RegisterInput) (*Result, error) {
	if in.Password != in.Confirm {
		return nil, invalid("两次输入的密码不匹配")
	}

	_, err := a.API.Register(ctx, api.RegisterRequest{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		if cause, ok := transportCause(err); ok {
			return nil, fail(err, "注册失败: "+cause)
		}
		return nil, fail(err, detail(err, "注册失败"))
	}

	a.navigate(ctx, Navigation{Page: PageLogin, After: RegisterRedirectDelay, Username: in.Username})
	return &Result{Status: "注册成功！请登录。"}, nil
}

// Logout clears the session and, when given, the chat state, then sends
// the user to the login page.
func (a *Auth) Logout(ctx context.Context, state *ChatState) error {
	if err := a.Sessions.Logout(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	if state != nil {
		state.Reset()
	}
	a.navigate(ctx, Navigation{Page: PageLogin})
	return nil
}

// Status reports who is signed in and whether the backend answers.
func (a *Auth) Status(ctx context.Context) (*Result, error) {
	s, err := a.Sessions.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	res := &Result{View: "未登录\n"}
	if s.Valid() {
		res.View = "已登录: " + s.Username + "\n"
	}

	health, err := a.API.Health(ctx)
	switch {
	case err != nil:
		res.Warnings = append(res.Warnings, "后端不可用: "+errorText(err))
	case health.Status != "" && health.Status != "ok" && health.Status != "healthy":
		res.Warnings = append(res.Warnings, "后端状态: "+health.Status)
	default:
		res.View += "后端: " + a.API.BaseURL() + "\n"
	}
	return res, nil
}

// errorText is the user-facing text of any API failure.
func errorText(err error) string {
	if cause, ok := transportCause(err); ok {
		return cause
	}
	return serverMessage(err)
}
