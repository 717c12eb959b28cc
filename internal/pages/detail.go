package pages

import (
	"context"
	"strings"

	"github.com/ziadkadry99/interview-assistant/internal/api"
)

const msgKBNotFound = "未找到指定的知识库"

// KnowledgeBase drives the page of a single knowledge base.
type KnowledgeBase struct {
	base
}

// NewKnowledgeBase creates the knowledge-base detail controller.
func NewKnowledgeBase(d Deps) *KnowledgeBase {
	return &KnowledgeBase{base{d}}
}

// open checks the session and the id shared by every action on the page.
func (k *KnowledgeBase) open(ctx context.Context, id int64) error {
	if _, err := k.requireSession(ctx); err != nil {
		return err
	}
	return checkID(id)
}

// Show renders the base's details. There is no single-base endpoint, so
// the full list is fetched and searched.
func (k *KnowledgeBase) Show(ctx context.Context, id int64) (*Result, error) {
	if err := k.open(ctx, id); err != nil {
		return nil, err
	}

	kbs, err := k.API.ListKnowledgeBases(ctx)
	if err != nil {
		if e := k.expired(ctx, err); e != nil {
			return nil, e
		}
		if _, ok := transportCause(err); ok {
			k.logf("pages: loading knowledge base %d: %v", id, err)
			return nil, fail(err, "加载知识库信息时出错")
		}
		return nil, fail(err, "加载知识库信息失败")
	}

	kb := findKnowledgeBase(kbs, id)
	if kb == nil {
		return nil, fail(nil, msgKBNotFound)
	}
	view, err := render("knowledge-base", kb)
	if err != nil {
		return nil, err
	}
	return &Result{View: view}, nil
}

// AddText adds one text document to the base.
func (k *KnowledgeBase) AddText(ctx context.Context, id int64, text string) (*Result, error) {
	if err := k.open(ctx, id); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("请输入文档内容")
	}

	if err := k.API.AddDocuments(ctx, id, []string{text}); err != nil {
		if e := k.expired(ctx, err); e != nil {
			return nil, e
		}
		return nil, prefixed(err, "添加失败")
	}
	return &Result{Status: "文档添加成功！"}, nil
}

// AddResume adds a résumé file to the base.
func (k *KnowledgeBase) AddResume(ctx context.Context, id int64, f *api.File) (*Result, error) {
	if err := k.open(ctx, id); err != nil {
		return nil, err
	}
	if err := checkFile(f); err != nil {
		return nil, err
	}

	if err := k.API.AddResumeToKnowledgeBase(ctx, id, *f); err != nil {
		if e := k.expired(ctx, err); e != nil {
			return nil, e
		}
		return nil, prefixed(err, "添加失败")
	}
	return &Result{Status: "简历内容已添加到知识库！"}, nil
}

// Query asks the base a question and renders the answer with its sources.
func (k *KnowledgeBase) Query(ctx context.Context, id int64, question string) (*Result, error) {
	if err := k.open(ctx, id); err != nil {
		return nil, err
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, invalid("请输入问题")
	}

	result, err := k.API.QueryKnowledgeBase(ctx, id, question)
	if err != nil {
		if e := k.expired(ctx, err); e != nil {
			return nil, e
		}
		return nil, prefixed(err, "查询失败")
	}

	view, err := render("query-result", result)
	if err != nil {
		return nil, err
	}
	return &Result{View: view}, nil
}

// History sends the user to the query history of the base.
func (k *KnowledgeBase) History(ctx context.Context, id int64) error {
	if err := checkID(id); err != nil {
		return err
	}
	k.navigate(ctx, Navigation{Page: PageHistory, KnowledgeBaseID: id})
	return nil
}
