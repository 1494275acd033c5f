package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSections(t *testing.T) {
	t.Run("GroupsAndSorts", func(t *testing.T) {
		sections := BuildSections([]string{
			"placards/2024-07-02.pdf",
			"summary.pdf",
			"placards/2024-07-01.pdf",
		})

		require.Len(t, sections, 2)
		assert.Equal(t, "Other", sections[0].Name)
		assert.Equal(t, []File{{Name: "summary.pdf", Path: "summary.pdf"}}, sections[0].Files)
		assert.Equal(t, "placards", sections[1].Name)
		assert.Equal(t, []File{
			{Name: "2024-07-01.pdf", Path: "placards/2024-07-01.pdf"},
			{Name: "2024-07-02.pdf", Path: "placards/2024-07-02.pdf"},
		}, sections[1].Files)
	})

	t.Run("ImmediateParentOnly", func(t *testing.T) {
		sections := BuildSections([]string{"archive/2024/a.pdf", "b.pdf"})

		require.Len(t, sections, 2)
		assert.Equal(t, "2024", sections[0].Name)
		assert.Equal(t, "archive/2024/a.pdf", sections[0].Files[0].Path)
		assert.Equal(t, DefaultSection, sections[1].Name)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, BuildSections(nil))
		assert.Empty(t, BuildSections([]string{".", ""}))
	})

	t.Run("Deterministic", func(t *testing.T) {
		in := []string{"z/1.pdf", "a/2.pdf", "a/1.pdf", "root.pdf"}
		first := BuildSections(in)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, BuildSections(in))
		}
		assert.Equal(t, 4, Count(first))
	})
}
