package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/ziadkadry99/interview-assistant/internal/pages"
)

// Navigator turns page navigation into terminal hints. A navigation is
// held until Flush, so the page's own message is printed before the delay
// runs out and the hint appears.
type Navigator struct {
	Printer *Printer
	// NoWait skips the delays.
	NoWait bool

	pending *pendingNav
}

type pendingNav struct {
	ctx context.Context
	nav pages.Navigation
}

// Navigate implements pages.Navigator. It does not block; a later
// navigation replaces an earlier one that was not flushed.
func (n *Navigator) Navigate(ctx context.Context, nav pages.Navigation) {
	n.pending = &pendingNav{ctx: ctx, nav: nav}
}

// Pending reports whether a navigation is waiting for Flush.
func (n *Navigator) Pending() bool { return n.pending != nil }

// Flush waits out the pending navigation's delay and prints its hint.
// Nothing is printed when the navigation's context ends first.
func (n *Navigator) Flush() {
	p := n.pending
	n.pending = nil
	if p == nil {
		return
	}
	if p.nav.After > 0 && !n.NoWait {
		t := time.NewTimer(p.nav.After)
		select {
		case <-p.ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
	if hint := Hint(p.nav); hint != "" {
		n.Printer.Info(hint)
	}
}

// Hint is the command that opens the page nav points at.
func Hint(nav pages.Navigation) string {
	switch nav.Page {
	case pages.PageHome:
		return "继续: interview resume upload <文件> --chat"
	case pages.PageLogin:
		if nav.Username != "" {
			return fmt.Sprintf("请登录: interview auth login --username %s", nav.Username)
		}
		return "请登录: interview auth login"
	case pages.PageKnowledge:
		return "知识库列表: interview kb list"
	case pages.PageKBDetail:
		return fmt.Sprintf("查看详情: interview kb show %d", nav.KnowledgeBaseID)
	case pages.PageHistory:
		return fmt.Sprintf("查询历史: interview kb history %d", nav.KnowledgeBaseID)
	case pages.PageProfile:
		return "个人资料: interview profile show"
	}
	return ""
}
