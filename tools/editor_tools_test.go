package tools

import (
	"context"
	"testing"

	"github.com/sjzsdu/uiforge/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorToolCall(t *testing.T) {
	ctx := context.Background()
	session := workspace.NewSession()
	editor := NewEditorTool(session)

	out, err := editor.Call(ctx, `{"command":"create","path":"/App.jsx","file_text":"a\nb"}`)
	require.NoError(t, err)
	assert.Equal(t, "File created: /App.jsx", out)

	out, err = editor.Call(ctx, `{"command":"insert","path":"/App.jsx","insert_line":0,"new_str":"x"}`)
	require.NoError(t, err)
	assert.Equal(t, "Text inserted at line 0 in /App.jsx", out)

	out, err = editor.Call(ctx, `{"command":"view","path":"/App.jsx","view_range":[1,2]}`)
	require.NoError(t, err)
	assert.Equal(t, "1\tx\n2\ta", out)

	// 字符串形式的行号和范围
	out, err = editor.Call(ctx, `{"command":"insert","path":"/App.jsx","insert_line":"3","new_str":"y"}`)
	require.NoError(t, err)
	assert.Equal(t, "Text inserted at line 3 in /App.jsx", out)

	out, err = editor.Call(ctx, `{"command":"view","path":"/App.jsx","view_range":"3, -1"}`)
	require.NoError(t, err)
	assert.Equal(t, "3\tb\n4\ty", out)

	_, err = editor.Call(ctx, "not json")
	assert.Error(t, err)
}

func TestFileManagerToolCall(t *testing.T) {
	ctx := context.Background()
	session := workspace.NewSession()
	session.Create("/a.txt", "A")
	session.Create("/b.txt", "B")
	manager := NewFileManagerTool(session)

	out, err := manager.Call(ctx, `{"command":"rename","path":"/a.txt","new_path":"/b.txt"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Error: Failed to rename /a.txt to /b.txt")

	out, err = manager.Call(ctx, `{"command":"delete","path":"/a.txt"}`)
	require.NoError(t, err)
	assert.Equal(t, "Successfully deleted /a.txt", out)
}

func TestCreateTools(t *testing.T) {
	list := CreateTools(workspace.NewSession())
	require.Len(t, list, 2)
	assert.Equal(t, "str_replace_editor", list[0].Name())
	assert.Equal(t, "file_manager", list[1].Name())
	assert.NotEmpty(t, list[1].Description())
}
