package vfs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertConsistent 检查平铺索引与父子关系索引保持同步
func assertConsistent(t *testing.T, fs *FileSystem) {
	t.Helper()
	for path, node := range fs.nodes {
		assert.Equal(t, path, node.Path, "索引键与节点路径不一致")
		if path == "/" {
			continue
		}
		assert.Equal(t, joinPath(parentPath(path), node.Name), path)
		parent, ok := fs.nodes[parentPath(path)]
		if assert.True(t, ok, "缺少父节点: %s", path) {
			assert.True(t, parent.IsDir())
			assert.True(t, parent.HasChild(node.Name), "父节点未包含子节点: %s", path)
		}
	}
	for path, node := range fs.nodes {
		for _, name := range node.children {
			_, ok := fs.nodes[joinPath(path, name)]
			assert.True(t, ok, "子节点不在索引中: %s/%s", path, name)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/folder/file.txt", NormalizePath("//folder//file.txt"))
	assert.Equal(t, "/", NormalizePath(""))
	assert.Equal(t, "/a", NormalizePath("a/"))

	for _, in := range []string{"x", "/x/", "///", "a//b//c/", "/"} {
		got := NormalizePath(in)
		assert.True(t, strings.HasPrefix(got, "/"))
		assert.NotContains(t, got, "//")
		if got != "/" {
			assert.False(t, strings.HasSuffix(got, "/"))
		}
	}
}

func TestCreateFileCreatesAncestors(t *testing.T) {
	fs := NewFileSystem()

	node := fs.CreateFile("/a/b/c/d.txt", "x")
	require.NotNil(t, node)
	assert.Equal(t, "d.txt", node.Name)
	assert.Equal(t, "/a/b/c/d.txt", node.Path)

	for _, dir := range []string{"/a", "/a/b", "/a/b/c"} {
		n := fs.GetNode(dir)
		require.NotNil(t, n, dir)
		assert.True(t, n.IsDir())
	}
	content, ok := fs.ReadFile("/a/b/c/d.txt")
	assert.True(t, ok)
	assert.Equal(t, "x", content)
	assertConsistent(t, fs)
}

func TestCreateFileExisting(t *testing.T) {
	fs := NewFileSystem()
	require.NotNil(t, fs.CreateFile("/t.txt", "A"))

	assert.Nil(t, fs.CreateFile("/t.txt", "B"))
	content, _ := fs.ReadFile("/t.txt")
	assert.Equal(t, "A", content)

	// 目录同样不可重复创建
	require.NotNil(t, fs.CreateDirectory("/dir"))
	assert.Nil(t, fs.CreateDirectory("/dir"))
	assert.Nil(t, fs.CreateFile("/dir", "x"))
	assert.Nil(t, fs.CreateDirectory("/"))
}

func TestCreateUnderFile(t *testing.T) {
	fs := NewFileSystem()
	fs.CreateFile("/a.txt", "a")

	assert.Nil(t, fs.CreateFile("/a.txt/b.txt", "b"))
	assert.False(t, fs.Exists("/a.txt/b.txt"))
	assertConsistent(t, fs)
}

func TestReadAndUpdateFile(t *testing.T) {
	fs := NewFileSystem()
	fs.CreateFile("/src/index.ts", "old")

	_, ok := fs.ReadFile("/missing")
	assert.False(t, ok)
	_, ok = fs.ReadFile("/src")
	assert.False(t, ok)

	assert.True(t, fs.UpdateFile("/src/index.ts", "new"))
	content, _ := fs.ReadFile("/src/index.ts")
	assert.Equal(t, "new", content)

	assert.False(t, fs.UpdateFile("/src", "x"))
	assert.False(t, fs.UpdateFile("/nope.ts", "x"))
	assert.False(t, fs.Exists("/nope.ts"))
}

func TestListDirectory(t *testing.T) {
	fs := NewFileSystem()
	fs.CreateFile("/b.txt", "")
	fs.CreateDirectory("/a")

	children, ok := fs.ListDirectory("/")
	require.True(t, ok)
	require.Len(t, children, 2)
	assert.Equal(t, "b.txt", children[0].Name)
	assert.Equal(t, "a", children[1].Name)

	_, ok = fs.ListDirectory("/b.txt")
	assert.False(t, ok)
	_, ok = fs.ListDirectory("/missing")
	assert.False(t, ok)
}

func TestDeleteFile(t *testing.T) {
	fs := NewFileSystem()
	fs.CreateFile("/src/components/Button.tsx", "button")
	fs.CreateFile("/src/index.ts", "index")
	fs.CreateFile("/README.md", "readme")

	t.Run("根目录不可删除", func(t *testing.T) {
		assert.False(t, fs.DeleteFile("/"))
		assert.True(t, fs.Exists("/"))
		assert.True(t, IsKind(fs.DeleteError("/"), RootForbidden))
	})

	t.Run("删除不存在的路径", func(t *testing.T) {
		assert.False(t, fs.DeleteFile("/nope"))
		assert.True(t, IsKind(fs.DeleteError("/nope"), NotFound))
	})

	t.Run("递归删除目录", func(t *testing.T) {
		assert.True(t, fs.DeleteFile("/src"))
		assert.False(t, fs.Exists("/src"))
		assert.False(t, fs.Exists("/src/components"))
		assert.False(t, fs.Exists("/src/components/Button.tsx"))
		assert.False(t, fs.Exists("/src/index.ts"))
		assert.True(t, fs.Exists("/README.md"))
		assert.Equal(t, 2, fs.CountNodes())
		assertConsistent(t, fs)
	})

	t.Run("删除后可重新创建", func(t *testing.T) {
		require.NotNil(t, fs.CreateFile("/src/index.ts", "again"))
		content, _ := fs.ReadFile("/src/index.ts")
		assert.Equal(t, "again", content)
		assertConsistent(t, fs)
	})
}

func TestSnapshotAndVisit(t *testing.T) {
	fs := NewFileSystem()
	fs.CreateFile("/b/2.js", "two")
	fs.CreateFile("/a.js", "one")
	fs.CreateDirectory("/empty")

	snapshot := fs.Snapshot()
	assert.Equal(t, map[string]string{"/b/2.js": "two", "/a.js": "one"}, snapshot)
	assert.Equal(t, []string{"/a.js", "/b/2.js"}, fs.GetAllFiles())

	// 快照是副本
	snapshot["/a.js"] = "changed"
	content, _ := fs.ReadFile("/a.js")
	assert.Equal(t, "one", content)

	var visited []string
	require.NoError(t, fs.Visit(func(node *Node, depth int) error {
		visited = append(visited, node.Path)
		return nil
	}))
	assert.Equal(t, []string{"/", "/a.js", "/b", "/b/2.js", "/empty"}, visited)
}

func TestReset(t *testing.T) {
	fs := NewFileSystem()
	fs.CreateFile("/a/b.txt", "x")
	fs.Reset()
	assert.Equal(t, 1, fs.CountNodes())
	assert.True(t, fs.Exists("/"))
	assert.Empty(t, fs.Root().ChildNames())
}
