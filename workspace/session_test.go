package workspace

import (
	"encoding/base64"
	"strings"
	"sync"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	jsonstore "github.com/sjzsdu/uiforge/helper/json"
	"github.com/sjzsdu/uiforge/pipeline"
	"github.com/sjzsdu/uiforge/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionEditCommands(t *testing.T) {
	s := NewSession()
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, uint64(0), s.Version())

	assert.Equal(t, "File created: /App.jsx", s.Create("/App.jsx", "const a = 'foo';"))
	assert.Equal(t, uint64(1), s.Version())

	// 失败的命令不改变版本
	assert.Equal(t, "Error: File already exists: /App.jsx", s.Create("/App.jsx", "x"))
	assert.Equal(t, uint64(1), s.Version())

	assert.Equal(t, "Replaced 1 occurrence(s) of the string in /App.jsx", s.Replace("/App.jsx", "foo", "bar"))
	assert.Equal(t, "Text inserted at line 0 in /App.jsx", s.Insert("/App.jsx", 0, "// header"))
	assert.Equal(t, "1\t// header\n2\tconst a = 'bar';", s.View("/App.jsx", nil))
	assert.Equal(t, uint64(3), s.Version())

	assert.Equal(t, "Successfully renamed /App.jsx to /src/App.jsx", s.Rename("App.jsx", "/src/App.jsx"))
	assert.Equal(t, []string{"/src/App.jsx"}, s.Files())

	status := s.Rename("/missing", "/x")
	assert.True(t, strings.HasPrefix(status, "Error: Failed to rename /missing to /x"))

	assert.Equal(t, "Successfully deleted /src", s.Delete("/src"))
	assert.True(t, strings.HasPrefix(s.Delete("/"), "Error: Failed to delete /"))
	assert.Empty(t, s.Files())
	assert.Equal(t, uint64(5), s.Version())
}

func TestSessionWriteFile(t *testing.T) {
	s := NewSession()
	assert.True(t, s.WriteFile("/a.js", "1"))
	assert.True(t, s.WriteFile("/a.js", "2"))
	v := s.Version()
	assert.True(t, s.WriteFile("/a.js", "2"))
	assert.Equal(t, v, s.Version(), "内容未变化时不递增版本")

	content, ok := s.ReadFile("/a.js")
	assert.True(t, ok)
	assert.Equal(t, "2", content)

	assert.True(t, s.Remove("/a.js"))
	assert.False(t, s.Remove("/a.js"))
}

func TestSessionRefresh(t *testing.T) {
	t.Run("空项目", func(t *testing.T) {
		s := NewSession()
		p := s.Refresh()
		assert.Empty(t, p.Entry)
		assert.Contains(t, p.Document, "No preview available")
	})

	t.Run("正常渲染", func(t *testing.T) {
		s := NewSession()
		s.Create("/App.jsx", "import Card from './Card';\nexport default function App() { return <Card />; }")
		s.Create("/styles.css", "body { color: red; }")

		p := s.Refresh()
		assert.Equal(t, "/App.jsx", p.Entry)
		assert.Empty(t, p.Output.Errors)
		assert.Equal(t, []string{"@/Card"}, p.Output.Placeholders)
		assert.Contains(t, p.Document, "preview-bootstrap")
		assert.Contains(t, p.Document, "body { color: red; }")
		assert.Equal(t, s.Version(), p.Version)
	})

	t.Run("编译失败", func(t *testing.T) {
		s := NewSession()
		s.Create("/App.jsx", "export default function App() { return <div>; }")

		p := s.Refresh()
		require.Len(t, p.Output.Errors, 1)
		assert.Contains(t, p.Document, `data-count="1"`)
		assert.NotContains(t, p.Document, "preview-bootstrap")
	})

	t.Run("指定入口", func(t *testing.T) {
		s := NewSession(WithEntry("/Main.jsx"))
		s.Create("/App.jsx", "export default function App() { return null; }")
		s.Create("/Main.jsx", "export default function Main() { return null; }")
		assert.Equal(t, "/Main.jsx", s.Refresh().Entry)
	})

	t.Run("编译参数", func(t *testing.T) {
		s := NewSession(WithPipelineOptions(pipeline.WithTarget(api.ES2018), pipeline.WithWorkers(1)))
		s.Create("/App.jsx", "export default function App({ title }) { return <p>{title ?? 'none'}</p>; }")

		p := s.Refresh()
		require.Empty(t, p.Output.Errors)
		ref := p.Output.ImportMap.Imports["/App.jsx"]
		code, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(ref, "data:text/javascript;base64,"))
		require.NoError(t, err)
		assert.NotContains(t, string(code), "??")
	})

	t.Run("相同快照结果一致", func(t *testing.T) {
		s := NewSession()
		s.Create("/App.jsx", "export default function App() { return <p>hi</p>; }")
		assert.Equal(t, s.Refresh().Output.ResolutionMap, s.Refresh().Output.ResolutionMap)
	})
}

func TestSessionConcurrentEdits(t *testing.T) {
	s := NewSession()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Create("/dir/file"+strings.Repeat("x", i)+".js", "export default 1;")
			s.Refresh()
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.Files(), 20)
	assert.Equal(t, uint64(20), s.Version())
}

func TestSessionSaveAndLoad(t *testing.T) {
	store, err := jsonstore.NewJSONStoreAt(t.TempDir(), "snapshots")
	require.NoError(t, err)

	s := NewSession()
	s.Create("/src/App.jsx", "app")
	s.Create("/README.md", "")
	require.NoError(t, s.Save(store, "demo"))
	assert.True(t, store.Exists("demo"))

	restored := NewSession()
	restored.Create("/old.js", "old")
	require.NoError(t, restored.Load(store, "demo"))
	assert.Equal(t, s.Snapshot(), restored.Snapshot())

	assert.Error(t, restored.Load(store, "missing"))
}

func TestLoadSnapshotReportsDroppedEntries(t *testing.T) {
	s := NewSession()
	before := s.Version()

	err := s.LoadSnapshot([]byte(`{"/a":"file","/a/b":"child","/App.jsx":"app"}`))
	var dropped *vfs.DroppedError
	require.ErrorAs(t, err, &dropped)
	assert.Equal(t, []string{"/a/b"}, dropped.Paths)
	assert.Equal(t, []string{"/App.jsx", "/a"}, s.Files())
	assert.Greater(t, s.Version(), before)

	// JSON 无效时不修改文件树
	version := s.Version()
	assert.Error(t, s.LoadSnapshot([]byte(`not json`)))
	assert.Equal(t, version, s.Version())
}

func TestLatestReusesPreviewUntilChanged(t *testing.T) {
	s := NewSession()
	s.Create("/App.jsx", "export default function App() { return <p>one</p>; }")

	first := s.Latest()
	assert.Same(t, first, s.Latest())

	s.Replace("/App.jsx", "one", "two")
	second := s.Latest()
	assert.NotSame(t, first, second)
	assert.Equal(t, s.Version(), second.Version)

	s.SetEntry("/App.jsx")
	assert.NotSame(t, second, s.Latest())
}
