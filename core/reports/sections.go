package reports

import (
	"path"
	"sort"
	"strings"
)

// DefaultSection labels files stored directly in the root.
const DefaultSection = "Other"

// File is one listed artifact.
type File struct {
	// Name is the base name shown to the user.
	Name string `json:"name"`
	// Path is the name relative to the store root, used for downloads.
	Path string `json:"path"`
}

// Section groups files sharing the same parent directory.
type Section struct {
	Name  string `json:"name"`
	Files []File `json:"files"`
}

// BuildSections groups relative paths by their immediate parent directory name.
// Sections are sorted lexically, as are the files inside each section.
func BuildSections(paths []string) []Section {
	groups := make(map[string][]File)
	for _, p := range paths {
		p = strings.TrimPrefix(path.Clean(p), "/")
		if p == "." || p == "" {
			continue
		}
		dir, name := path.Split(p)
		label := DefaultSection
		if dir != "" {
			label = path.Base(strings.TrimSuffix(dir, "/"))
		}
		groups[label] = append(groups[label], File{Name: name, Path: p})
	}

	sections := make([]Section, 0, len(groups))
	for label, files := range groups {
		sort.Slice(files, func(i, j int) bool {
			if files[i].Name == files[j].Name {
				return files[i].Path < files[j].Path
			}
			return files[i].Name < files[j].Name
		})
		sections = append(sections, Section{Name: label, Files: files})
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Name < sections[j].Name
	})
	return sections
}

// Count returns the number of files across sections.
func Count(sections []Section) int {
	n := 0
	for _, s := range sections {
		n += len(s.Files)
	}
	return n
}
