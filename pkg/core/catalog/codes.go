package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jakechorley/daily-production-plan/pkg/core/planner"
)

// Stage is the processing stage a production order belongs to
type Stage string

const (
	StageIgnore     Stage = "ignore"
	StageFinished   Stage = "pt"
	StageFirstPass  Stage = "s1"
	StageSecondPass Stage = "s2"
	StageThirdPass  Stage = "s3"
)

// Category paths after normalization
const (
	smallCategoryPath = "AUTOMOTRIZ/MPEQUENAS"
	largeCategoryPath = "AUTOMOTRIZ/MGRANDES"
)

// ClassifyCode maps a product code to its processing stage and the code
// with the stage prefix removed
func ClassifyCode(code string) (Stage, string) {
	switch {
	case code == "":
		return StageFinished, ""
	case strings.HasPrefix(code, "VE-"):
		return StageIgnore, ""
	case strings.HasPrefix(code, "S3-"):
		return StageThirdPass, strings.TrimPrefix(code, "S3-")
	case strings.HasPrefix(code, "S2-VI-"):
		return StageSecondPass, strings.TrimPrefix(code, "S2-VI-")
	case strings.HasPrefix(code, "VI-"):
		return StageFirstPass, strings.TrimPrefix(code, "VI-")
	default:
		return StageFinished, code
	}
}

// ExtractSuffix returns the part of a code shared by a product and all its
// intermediate stages: the last three dash-separated parts when the code ends
// in a T<digits> variant, otherwise the last two.
func ExtractSuffix(code string) string {
	if code == "" {
		return ""
	}
	parts := strings.Split(code, "-")
	if len(parts) >= 3 && isVariantPart(parts[len(parts)-1]) {
		return strings.Join(parts[len(parts)-3:], "-")
	}
	if len(parts) >= 2 {
		return strings.Join(parts[len(parts)-2:], "-")
	}
	return code
}

func isVariantPart(part string) bool {
	if len(part) < 2 || part[0] != 'T' {
		return false
	}
	for _, r := range part[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SizeClassForCategory detects the size class from a full category path,
// ignoring case, accents and spaces
func SizeClassForCategory(category string) planner.SizeClass {
	normalized := normalizeCategory(category)
	switch {
	case strings.Contains(normalized, largeCategoryPath):
		return planner.SizeLarge
	case strings.Contains(normalized, smallCategoryPath):
		return planner.SizeSmall
	default:
		return planner.SizeOther
	}
}

func normalizeCategory(category string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.ToUpper(category))
	if err != nil {
		stripped = strings.ToUpper(category)
	}

	var b strings.Builder
	for _, r := range stripped {
		if r > unicode.MaxASCII || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
