package modulemap

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sjzsdu/uiforge/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, snapshot map[string]string) *Output {
	t.Helper()
	result := pipeline.New().Run(snapshot)
	return NewBuilder(DefaultOptions(), nil).Build(result)
}

func decode(t *testing.T, ref string) string {
	t.Helper()
	prefix := "data:text/javascript;base64,"
	require.True(t, strings.HasPrefix(ref, prefix), ref)
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(ref, prefix))
	require.NoError(t, err)
	return string(data)
}

func TestSpecifierKeys(t *testing.T) {
	out := build(t, map[string]string{
		"/components/Button.jsx": "export default function Button() { return <button />; }",
	})

	keys := []string{
		"/components/Button.jsx",
		"components/Button.jsx",
		"@/components/Button.jsx",
		"/components/Button",
		"components/Button",
		"@/components/Button",
	}
	ref := out.ImportMap.Imports[keys[0]]
	require.NotEmpty(t, ref)
	for _, key := range keys {
		assert.Equal(t, ref, out.ImportMap.Imports[key], key)
	}
	assert.Contains(t, decode(t, ref), "function Button")
}

func TestBuildExcludesFailedFile(t *testing.T) {
	snapshot := map[string]string{
		"/App.jsx":    "export default function App() { return <div />; }",
		"/Broken.jsx": "const = ;",
		"/util.js":    "export const x = 1;",
	}
	out := build(t, snapshot)

	require.Len(t, out.Errors, 1)
	assert.Equal(t, "/Broken.jsx", out.Errors[0].Path)

	// N-1 个文件可以解析
	local := map[string]bool{}
	for key, ref := range out.ImportMap.Imports {
		if strings.HasPrefix(ref, "data:") {
			local[ref] = true
		}
		assert.NotContains(t, key, "Broken")
	}
	assert.Len(t, local, 2)
}

func TestBuildFailedFileNotReplacedByPlaceholder(t *testing.T) {
	out := build(t, map[string]string{
		"/App.jsx":    "import Broken from './Broken';\nexport default function App() { return <Broken />; }",
		"/Broken.jsx": "const = ;",
	})
	for _, key := range []string{"/Broken.jsx", "/Broken", "@/Broken", "Broken"} {
		_, ok := out.ImportMap.Imports[key]
		assert.False(t, ok, key)
	}
}

func TestBuildPlaceholder(t *testing.T) {
	out := build(t, map[string]string{
		"/App.jsx": "import Missing from './components/Missing';\nexport default function App() { return <Missing />; }",
	})

	ref, ok := out.ImportMap.Imports["@/components/Missing"]
	require.True(t, ok)
	assert.Equal(t, ref, out.ImportMap.Imports["/components/Missing"])
	assert.Equal(t, []string{"@/components/Missing"}, out.Placeholders)

	code := decode(t, ref)
	assert.Contains(t, code, "const Missing = function() { return null; };")
	assert.Contains(t, code, "export default Missing;")
	assert.Contains(t, code, "export { Missing };")
}

func TestBuildResolvesExtensionAndAlias(t *testing.T) {
	out := build(t, map[string]string{
		"/src/App.tsx":                 "import Card from '../lib/Card';\nimport { cn } from '@/lib/utils';\nexport default function App() { return <Card className={cn()} />; }",
		"/lib/Card.jsx":                "export default function Card() { return <div />; }",
		"/lib/utils.ts":                "export const cn = (): string => '';",
		"/components/Header/index.jsx": "export default function Header() { return null; }",
		"/Page.jsx":                    "import Header from './components/Header';\nexport default function Page() { return <Header />; }",
	})

	require.Empty(t, out.Errors)
	assert.Empty(t, out.Placeholders)
	imports := out.ImportMap.Imports
	assert.Equal(t, imports["/lib/Card.jsx"], imports["@/lib/Card"])
	assert.Equal(t, imports["/lib/utils.ts"], imports["@/lib/utils"])
	assert.Equal(t, imports["/components/Header/index.jsx"], imports["@/components/Header"])
}

func TestBuildExternalPackages(t *testing.T) {
	out := build(t, map[string]string{
		"/App.jsx": "import { motion } from 'framer-motion';\nimport React from 'react';\nimport x from 'https://cdn.example.com/x.js';\nexport default function App() { return <motion.div />; }",
	})

	imports := out.ImportMap.Imports
	assert.Equal(t, "https://esm.sh/framer-motion", imports["framer-motion"])
	assert.Equal(t, DefaultOptions().CoreModules["react"], imports["react"])
	assert.Equal(t, DefaultOptions().CoreModules["react/jsx-runtime"], imports["react/jsx-runtime"])
	_, ok := imports["https://cdn.example.com/x.js"]
	assert.False(t, ok)
}

func TestBuildKeepsCoreModules(t *testing.T) {
	out := build(t, map[string]string{
		"/react.js": "export default 1;",
		"/App.jsx":  "import React from 'react';\nimport local from './react';\nexport default function App() { return <p>{local}</p>; }",
	})

	require.Empty(t, out.Errors)
	imports := out.ImportMap.Imports
	assert.Equal(t, DefaultOptions().CoreModules["react"], imports["react"])
	assert.Equal(t, imports["/react.js"], imports["@/react"])
	assert.NotEqual(t, imports["react"], imports["/react.js"])
}

func TestBuildStylesheets(t *testing.T) {
	out := build(t, map[string]string{
		"/src/App.jsx": "import './App.css';\nimport '@/theme.css';\nimport '../missing.css';\nexport default function App() { return null; }",
		"/src/App.css": ".app {}",
		"/theme.css":   ":root {}",
	})

	assert.Contains(t, out.StylesheetBlob, "/* /src/App.css */\n.app {}")
	assert.Contains(t, out.StylesheetBlob, "/* /theme.css */\n:root {}")
	assert.Contains(t, out.StylesheetBlob, "/* ../missing.css not found */")
	assert.NotContains(t, out.StylesheetBlob, "./App.css not found")
	assert.NotContains(t, out.StylesheetBlob, "@/theme.css not found")
}

func TestResolutionMapJSON(t *testing.T) {
	snapshot := map[string]string{
		"/App.jsx": "import B from './B';\nexport default function App() { return <B />; }",
		"/B.jsx":   "export default function B() { return null; }",
	}
	first := build(t, snapshot)
	second := build(t, snapshot)
	assert.Equal(t, first.ResolutionMap, second.ResolutionMap)

	var decoded ImportMap
	require.NoError(t, json.Unmarshal([]byte(first.ResolutionMap), &decoded))
	assert.Equal(t, first.ImportMap.Imports, decoded.Imports)
}

func TestPlaceholderName(t *testing.T) {
	assert.Equal(t, "Button", placeholderName("@/components/Button"))
	assert.Equal(t, "My_widget", placeholderName("./my-widget.jsx"))
	assert.Equal(t, "Placeholder3d", placeholderName("@/3d"))
}

func TestDataURL(t *testing.T) {
	assert.Equal(t, DataURL("export default 1;"), DataURL("export default 1;"))
	assert.NotEqual(t, DataURL("a"), DataURL("b"))
}
