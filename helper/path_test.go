package helper

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"//", "/"},
		{"//folder//file.txt", "/folder/file.txt"},
		{"folder/file.txt", "/folder/file.txt"},
		{"/folder/", "/folder"},
		{"/a///b////", "/a/b"},
		{"\\win\\path", "/win/path"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := StandardizePath(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, strings.HasPrefix(got, "/"))
			assert.NotContains(t, got, "//")
			if got != "/" {
				assert.False(t, strings.HasSuffix(got, "/"))
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join(home, ".uiforge"), GetPath(""))
	assert.Equal(t, filepath.Join(home, ".uiforge", "config"), GetPath("config"))
}
