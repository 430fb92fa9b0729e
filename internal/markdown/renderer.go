package markdown

import (
	"bytes"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Heading 描述渲染结果中的一个标题，Anchor 与 HTML 输出中的 id 一一对应。
type Heading struct {
	Level  int
	Text   string
	Anchor string
}

var (
	engine = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.DefinitionList,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
					chromahtml.TabWidth(2),
				),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = newSanitizer()
)

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// 标题锚点与 chroma 代码高亮依赖的属性需要放行
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").OnElements("pre", "code", "span", "div")
	return p
}

// Render 将 Markdown 正文渲染为净化后的 HTML，并返回按文档顺序排列的目录。
// 同一输入的两次渲染结果逐字节一致；无法识别的语法退化为转义文本，原始 HTML 不会透传。
func Render(body string) (template.HTML, []Heading, error) {
	source := []byte(body)

	// 单次解析同时服务目录提取与渲染，保证目录锚点与 HTML 中的 id 完全一致。
	// parser.Context 每次新建，标题 id 的去重计数不会跨调用泄漏。
	doc := engine.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))
	toc := collectHeadings(source, doc)

	var buf bytes.Buffer
	if err := engine.Renderer().Render(&buf, source, doc); err != nil {
		return "", nil, err
	}

	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), toc, nil
}

func collectHeadings(source []byte, doc ast.Node) []Heading {
	var toc []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		anchor := ""
		if id, found := heading.AttributeString("id"); found {
			if raw, ok := id.([]byte); ok {
				anchor = string(raw)
			}
		}

		toc = append(toc, Heading{
			Level:  heading.Level,
			Text:   headingText(source, heading),
			Anchor: anchor,
		})
		return ast.WalkSkipChildren, nil
	})
	return toc
}

// headingText 收集标题节点的纯文本，跳过强调等内联标记
func headingText(source []byte, n ast.Node) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		default:
			sb.WriteString(headingText(source, child))
		}
	}
	return sb.String()
}
