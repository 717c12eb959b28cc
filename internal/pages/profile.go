package pages

import "context"

// Profile drives the account page.
type Profile struct {
	base
}

// NewProfile creates the account controller.
func NewProfile(d Deps) *Profile {
	return &Profile{base{d}}
}

// Show renders the signed-in user's account record.
func (p *Profile) Show(ctx context.Context) (*Result, error) {
	if _, err := p.requireSession(ctx); err != nil {
		return nil, err
	}

	user, err := p.API.CurrentUser(ctx)
	if err != nil {
		if e := p.expired(ctx, err); e != nil {
			return nil, e
		}
		if _, ok := transportCause(err); ok {
			p.logf("pages: loading user: %v", err)
			return nil, fail(err, "加载用户信息时出错")
		}
		return nil, fail(err, "加载用户信息失败")
	}

	view, err := render("profile", user)
	if err != nil {
		return nil, err
	}
	return &Result{View: view}, nil
}

// ChangePassword replaces the account password.
func (p *Profile) ChangePassword(ctx context.Context, current, next, confirm string) (*Result, error) {
	if _, err := p.requireSession(ctx); err != nil {
		return nil, err
	}
	if next != confirm {
		return nil, invalid("两次输入的新密码不匹配")
	}

	if err := p.API.ChangePassword(ctx, current, next); err != nil {
		if e := p.expired(ctx, err); e != nil {
			return nil, e
		}
		if cause, ok := transportCause(err); ok {
			return nil, fail(err, "密码修改失败: "+cause)
		}
		return nil, fail(err, detail(err, "密码修改失败"))
	}
	return &Result{Status: "密码修改成功！"}, nil
}
