package convert

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"mdconv/config"
	"mdconv/state"
)

// buildOutputPath returns output file path under dst. Name comes either from
// the source file name or from user-defined template which may also add
// subdirectories. Every path segment is cleaned and, if requested,
// transliterated.
func buildOutputPath(values Values, dst string, env *state.LocalEnv) string {
	defaultFile := buildDefaultFileName(values.SourceFile, env)

	if env.Cfg.Document.OutputNameTemplate == "" {
		return filepath.Join(dst, defaultFile)
	}

	expandedName := expandOutputNameTemplate(values, env)
	if expandedName == "" {
		// fallback to default name if template expansion failed
		return filepath.Join(dst, defaultFile)
	}
	return assemblePathWithSubdirs(dst, expandedName, env)
}

func buildDefaultFileName(baseName string, env *state.LocalEnv) string {
	return cleanPathSegment(baseName, env) + env.Format.Ext()
}

func expandOutputNameTemplate(values Values, env *state.LocalEnv) string {
	expandedName, err := expandTemplate(config.OutputNameTemplateFieldName, env.Cfg.Document.OutputNameTemplate, values)
	if err != nil {
		env.Logger("convert").Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(filepath.FromSlash(expandedName))
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output path
func assemblePathWithSubdirs(outDir, expandedName string, env *state.LocalEnv) string {
	pathSegments := splitPath(expandedName)
	if len(pathSegments) == 0 {
		return filepath.Join(outDir, buildDefaultFileName("", env))
	}

	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)
	for _, segment := range pathSegments[:len(pathSegments)-1] {
		dirParts = append(dirParts, cleanPathSegment(segment, env))
	}
	dirParts = append(dirParts, buildDefaultFileName(pathSegments[len(pathSegments)-1], env))
	return filepath.Join(dirParts...)
}

// splitPath returns non empty path segments, "." and ".." are dropped so
// result always stays under output directory.
func splitPath(path string) []string {
	segments := make([]string, 0, 8)
	for head, tail := filepath.Split(strings.TrimSuffix(path, string(os.PathSeparator))); ; head, tail = filepath.Split(head) {
		if tail != "" && tail != "." && tail != ".." {
			segments = slices.Insert(segments, 0, tail)
		}
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" || head == filepath.VolumeName(head) {
			break
		}
	}
	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Document.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
