package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReport(t *testing.T) {
	s := NewSession()
	s.Create("/App.jsx", "import Nav from './Nav';\nexport default function App() { return <Nav />; }")
	s.Create("/Broken.jsx", "const = ;")

	report := Report(s.Refresh(), s.Files())
	assert.Contains(t, report, "# Build report")
	assert.Contains(t, report, "- Files: 2")
	assert.Contains(t, report, "- Entry: `/App.jsx`")
	assert.Contains(t, report, "- Errors: 1")
	assert.Contains(t, report, "## Compile errors")
	assert.Contains(t, report, "`/Broken.jsx:1:")
	assert.Contains(t, report, "- `@/Nav`")
	assert.NotContains(t, report, "Preview is ready.")

	s.Delete("/Broken.jsx")
	report = Report(s.Refresh(), s.Files())
	assert.Contains(t, report, "Preview is ready.")
}
