package filesig

import (
	"strings"
	"time"

	"github.com/gobwas/glob"
)

// FileInfo describes a file or directory visited by DetectTree
type FileInfo struct {
	Name    string
	Path    string // slash separated, relative to the tree root
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// ============================================================================
// FileSelector Interface
// ============================================================================

// FileSelector decides which files DetectTree inspects.
//
//	selector := filesig.And(
//	    filesig.Glob("*.{doc,docx,xls,xlsx}"),
//	    filesig.Depth(3),
//	)
//	detections, err := detector.DetectTree(ctx, "/srv/uploads", selector)
type FileSelector interface {
	// Match returns true if the file should be inspected.
	Match(file *FileInfo) bool

	// TraverseDescendants returns true if a directory should be entered.
	// Only called for directories.
	TraverseDescendants(file *FileInfo) bool
}

// ============================================================================
// Built-in Selectors
// ============================================================================

// AllSelector matches all files and traverses all directories.
type AllSelector struct{}

func (s AllSelector) Match(file *FileInfo) bool               { return true }
func (s AllSelector) TraverseDescendants(file *FileInfo) bool { return true }

// All returns a selector that matches all files.
func All() FileSelector {
	return AllSelector{}
}

type globSelector struct {
	g        glob.Glob
	fullPath bool
}

// CompileGlob creates a selector from a glob pattern. Patterns containing a
// slash match the relative path, others match the base name. Supports *,
// **, ?, [abc], [a-z] and {alt1,alt2}.
//
//	CompileGlob("*.pdf")            // any PDF at any depth
//	CompileGlob("incoming/**.zip")  // archives under incoming/
func CompileGlob(pattern string) (FileSelector, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, err
	}
	return &globSelector{g: g, fullPath: strings.Contains(pattern, "/")}, nil
}

// Glob is CompileGlob for patterns known to be valid. An invalid pattern
// matches nothing.
func Glob(pattern string) FileSelector {
	s, err := CompileGlob(pattern)
	if err != nil {
		return FuncSelector(func(*FileInfo) bool { return false })
	}
	return s
}

func (s *globSelector) Match(file *FileInfo) bool {
	if s.fullPath {
		return s.g.Match(file.Path)
	}
	return s.g.Match(file.Name)
}

func (s *globSelector) TraverseDescendants(file *FileInfo) bool {
	return true
}

type depthSelector struct {
	maxDepth int
}

// Depth limits traversal to maxDepth levels below the root.
// Depth 1 = immediate children only.
func Depth(maxDepth int) FileSelector {
	return &depthSelector{maxDepth: maxDepth}
}

func depthOf(path string) int {
	path = strings.Trim(path, "/")
	if path == "" {
		return 0
	}
	return strings.Count(path, "/") + 1
}

func (s *depthSelector) Match(file *FileInfo) bool {
	return depthOf(file.Path) <= s.maxDepth
}

func (s *depthSelector) TraverseDescendants(file *FileInfo) bool {
	return depthOf(file.Path) < s.maxDepth
}

// ============================================================================
// Composable Selectors (And, Or, Not)
// ============================================================================

type andSelector struct {
	selectors []FileSelector
}

// And matches only if ALL selectors match.
func And(selectors ...FileSelector) FileSelector {
	return &andSelector{selectors: selectors}
}

func (s *andSelector) Match(file *FileInfo) bool {
	for _, sel := range s.selectors {
		if !sel.Match(file) {
			return false
		}
	}
	return true
}

// TraverseDescendants requires every selector to allow the descent, since a
// file below is only matched when all of them match it.
func (s *andSelector) TraverseDescendants(file *FileInfo) bool {
	for _, sel := range s.selectors {
		if !sel.TraverseDescendants(file) {
			return false
		}
	}
	return true
}

type orSelector struct {
	selectors []FileSelector
}

// Or matches if ANY selector matches.
func Or(selectors ...FileSelector) FileSelector {
	return &orSelector{selectors: selectors}
}

func (s *orSelector) Match(file *FileInfo) bool {
	for _, sel := range s.selectors {
		if sel.Match(file) {
			return true
		}
	}
	return false
}

func (s *orSelector) TraverseDescendants(file *FileInfo) bool {
	for _, sel := range s.selectors {
		if sel.TraverseDescendants(file) {
			return true
		}
	}
	return false
}

type notSelector struct {
	selector FileSelector
}

// Not inverts a selector's match result.
func Not(selector FileSelector) FileSelector {
	return &notSelector{selector: selector}
}

func (s *notSelector) Match(file *FileInfo) bool {
	return !s.selector.Match(file)
}

func (s *notSelector) TraverseDescendants(file *FileInfo) bool {
	return true
}

// ============================================================================
// FuncSelector
// ============================================================================

type funcSelector struct {
	matchFn func(*FileInfo) bool
}

// FuncSelector creates a selector from a custom function.
//
//	FuncSelector(func(f *filesig.FileInfo) bool {
//	    return f.Size > 0 && f.Size < 50<<20
//	})
func FuncSelector(fn func(*FileInfo) bool) FileSelector {
	return &funcSelector{matchFn: fn}
}

func (s *funcSelector) Match(file *FileInfo) bool               { return s.matchFn(file) }
func (s *funcSelector) TraverseDescendants(file *FileInfo) bool { return true }
