package preview

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/sjzsdu/uiforge/modulemap"
	"github.com/sjzsdu/uiforge/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOutput(t *testing.T, snapshot map[string]string) *modulemap.Output {
	t.Helper()
	result := pipeline.New().Run(snapshot)
	return modulemap.NewBuilder(modulemap.DefaultOptions(), nil).Build(result)
}

func TestBuildSuccessDocument(t *testing.T) {
	out := buildOutput(t, map[string]string{
		"/App.jsx": "import './App.css';\nexport default function App() { return <h1>Hello</h1>; }",
		"/App.css": "h1 { color: red; }",
	})
	require.Empty(t, out.Errors)

	doc := BuildFromOutput("/App.jsx", out)
	assert.Contains(t, doc, `<script type="importmap">`)
	assert.Contains(t, doc, `id="preview-bootstrap"`)
	assert.Contains(t, doc, `<div id="root"></div>`)
	assert.Contains(t, doc, "h1 { color: red; }")
	assert.Contains(t, doc, `"react-dom/client"`)
	assert.NotContains(t, doc, "preview-error-banner")

	// 入口解析为 data URL
	assert.Contains(t, doc, `await import("data:text/javascript;base64,`)
	assert.Contains(t, doc, `mod["App"]`)

	// React 在 try 中加载，加载失败同样进入错误显示
	assert.NotContains(t, doc, "import React from")
	tryAt := strings.Index(doc, "try {")
	reactAt := strings.Index(doc, "await import('react')")
	require.Positive(t, tryAt)
	assert.Greater(t, reactAt, tryAt)
	assert.Contains(t, doc, "await import('react-dom/client')")
}

func TestBuildErrorDocument(t *testing.T) {
	errs := []pipeline.CompileError{
		{Path: "/App.jsx", Message: "Unexpected token (3:14)"},
		{Path: "/Other.jsx", Message: "Something broke"},
	}
	doc := Build("/App.jsx", `{"imports":{}}`, "", errs)

	assert.Contains(t, doc, "preview-error-banner")
	assert.Contains(t, doc, `data-count="2"`)
	assert.Contains(t, doc, "Build failed with 2 errors")
	assert.Contains(t, doc, "/App.jsx:3:14")
	assert.Contains(t, doc, "Unexpected token")
	assert.Contains(t, doc, "Something broke")
	assert.NotContains(t, doc, "<script")
	assert.NotContains(t, doc, "preview-bootstrap")
}

func TestBannerCountMatchesErrors(t *testing.T) {
	out := buildOutput(t, map[string]string{
		"/App.jsx": "export default function App() { return <div>; }",
		"/A.jsx":   "const = 1;",
		"/B.jsx":   "export default function B() { return null; }",
	})
	require.NotEmpty(t, out.Errors)

	doc := BuildFromOutput("/App.jsx", out)
	match := regexp.MustCompile(`data-count="(\d+)"`).FindStringSubmatch(doc)
	require.NotNil(t, match)
	assert.Equal(t, strconv.Itoa(len(out.Errors)), match[1])
	assert.Equal(t, len(out.Errors), strings.Count(doc, `<li class="preview-error">`))
}

func TestBuildEscapesMessage(t *testing.T) {
	doc := Build("/App.jsx", "", "", []pipeline.CompileError{
		{Path: "/App.jsx", Message: "Unexpected <script>alert(1)</script>"},
	})
	assert.NotContains(t, doc, "<script>alert(1)</script>")
	assert.Contains(t, doc, "&lt;script&gt;")
	assert.Contains(t, doc, "Build failed with 1 error")
}

func TestBuildMalformedMap(t *testing.T) {
	for _, bad := range []string{"", "not json", "null", "[1]"} {
		doc := Build("/App.jsx", bad, "", nil)
		assert.Contains(t, doc, "Preview unavailable", bad)
		assert.NotContains(t, doc, "<script", bad)
	}
}

func TestBuildEntryFallback(t *testing.T) {
	doc := Build("/Missing.jsx", `{"imports":{"react":"https://esm.sh/react"}}`, "", nil)
	assert.Contains(t, doc, `await import("/Missing.jsx")`)
	assert.Contains(t, doc, `mod["Missing"]`)
}

func TestBuildEscapesStylesheet(t *testing.T) {
	doc := Build("/App.jsx", `{"imports":{}}`, "body{}</style><script>x()</script>", nil)
	assert.NotContains(t, doc, "</style><script>x()")
	assert.Contains(t, doc, `<\/style><script>x()`)
}

func TestParseError(t *testing.T) {
	entry := ParseError(pipeline.CompileError{Path: "/a.jsx", Message: "/a.jsx: Expected \";\" but found \"}\" (2:5)"})
	assert.Equal(t, 2, entry.Line)
	assert.Equal(t, 5, entry.Column)
	assert.Equal(t, `Expected ";" but found "}"`, entry.Message)

	plain := ParseError(pipeline.CompileError{Path: "/b.jsx", Message: "boom"})
	assert.Zero(t, plain.Line)
	assert.Equal(t, "boom", plain.Message)

	// 只有末尾的位置是行列号
	nested := ParseError(pipeline.CompileError{Path: "/c.jsx", Message: "Unexpected \"(1:2)\" in tuple (7:9)"})
	assert.Equal(t, 7, nested.Line)
	assert.Equal(t, 9, nested.Column)
	assert.Equal(t, `Unexpected "(1:2)" in tuple`, nested.Message)

	inner := ParseError(pipeline.CompileError{Path: "/d.jsx", Message: "bad range (1:2) here"})
	assert.Zero(t, inner.Line)
	assert.Equal(t, "bad range (1:2) here", inner.Message)
}

func TestFindEntry(t *testing.T) {
	assert.Equal(t, "/App.jsx", FindEntry([]string{"/index.tsx", "/App.jsx"}, ""))
	assert.Equal(t, "/src/App.tsx", FindEntry([]string{"/src/App.tsx", "/src/util.ts"}, ""))
	assert.Equal(t, "/lib/a.js", FindEntry([]string{"/styles.css", "/lib/b.js", "/lib/a.js"}, ""))
	assert.Equal(t, "", FindEntry([]string{"/README.md"}, ""))
	assert.Equal(t, "/Main.jsx", FindEntry([]string{"/App.jsx"}, "/Main.jsx"))
}

func TestExportName(t *testing.T) {
	assert.Equal(t, "App", ExportName("/App.jsx"))
	assert.Equal(t, "Main", ExportName("@/src/Main"))
}

func TestHostPage(t *testing.T) {
	page := HostPage("uiforge", "/preview", "/version", 7)
	assert.Contains(t, page, `sandbox="`+SandboxPolicy+`"`)
	assert.Contains(t, page, `sandbox="allow-scripts allow-forms"`)
	assert.NotContains(t, page, "allow-same-origin")
	assert.Contains(t, page, `src="/preview"`)
	assert.Contains(t, page, `<span id="preview-version">7</span>`)
	assert.NotContains(t, page, "preview-error-banner")
}
