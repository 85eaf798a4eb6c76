package naming

import (
	"path/filepath"
	"strings"

	"bindery/internal/aip"
)

// metadataExtensions mark an AIP as metadata-bearing; every other allowed
// extension is media.
var metadataExtensions = map[string]struct{}{
	".pdf": {},
	".xml": {},
}

// Classification is the type decision plus whether the folder's listing was
// heterogeneous. Folders are assumed homogeneous; mixed content is reported
// so the caller can warn instead of silently misclassifying.
type Classification struct {
	Type  aip.Type
	Mixed bool
}

// Classify inspects a folder's file listing and determines the AIP type.
// Any metadata-document extension present classifies the AIP as metadata.
func Classify(listing []string) Classification {
	var sawMetadata, sawMedia bool
	for _, name := range listing {
		ext := strings.ToLower(filepath.Ext(name))
		if ext == "" {
			continue
		}
		if _, ok := metadataExtensions[ext]; ok {
			sawMetadata = true
		} else {
			sawMedia = true
		}
	}
	cls := Classification{Type: aip.TypeMedia, Mixed: sawMetadata && sawMedia}
	if sawMetadata {
		cls.Type = aip.TypeMetadata
	}
	return cls
}
