package aip

import (
	"path/filepath"
	"strings"
)

// Status represents the lifecycle of an AIP within a batch run.
type Status string

const (
	StatusDiscovered   Status = "discovered"
	StatusNamed        Status = "named"
	StatusFiltered     Status = "filtered"
	StatusRestructured Status = "restructured"
	StatusExtracted    Status = "extracted"
	StatusPreserved    Status = "preserved"
	StatusPackaged     Status = "packaged"
	StatusErrored      Status = "errored"
)

// CompleteStatus is the status-log value recorded for a packaged AIP.
const CompleteStatus = "Complete"

var allStatuses = []Status{
	StatusDiscovered,
	StatusNamed,
	StatusFiltered,
	StatusRestructured,
	StatusExtracted,
	StatusPreserved,
	StatusPackaged,
	StatusErrored,
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// Terminal reports whether the status ends processing for an AIP.
func (s Status) Terminal() bool {
	return s == StatusPackaged || s == StatusErrored
}

// Type classifies an AIP's payload composition.
type Type string

const (
	TypeMedia    Type = "media"
	TypeMetadata Type = "metadata"
)

// Department identifies the organizational owner of an AIP.
type Department string

const (
	DepartmentRussell  Department = "russell"
	DepartmentHargrett Department = "hargrett"
)

// ErrorKind names a terminal error partition under errors/.
type ErrorKind string

const (
	ErrDepartmentUnknown    ErrorKind = "department_unknown"
	ErrFolderNameInvalid    ErrorKind = "aip_folder_name_invalid"
	ErrAllFilesDeleted      ErrorKind = "all_files_deleted"
	ErrPreexistingObjects   ErrorKind = "preexisting_objects_folder"
	ErrPreexistingMediaInfo ErrorKind = "preexisting_mediainfo_copy"
	ErrNoMediaInfoXML       ErrorKind = "no_mediainfo_xml"
	ErrPreservationInvalid  ErrorKind = "preservation_invalid"
	ErrBagInvalid           ErrorKind = "bag_invalid"
	ErrArchiveFailed        ErrorKind = "archive_failed"
)

// Item is the unit of work: one AIP folder driven through the pipeline.
//
// Folder tracks the folder's current name under the batch root; stages that
// rename the folder (restructure, packaging) update it. SourceFolder keeps
// the name the folder arrived with for status-log rows.
type Item struct {
	SourceFolder string
	Folder       string
	// CanonicalFolder, when non-empty, is the name the restructure stage
	// renames the folder to; departments with identifier-only naming leave
	// it empty.
	CanonicalFolder string
	Department      Department
	ID              string
	Title           string
	Type            Type
	Status          Status
}

// Path returns the item's current location under the batch root.
func (i *Item) Path(root string) string {
	return filepath.Join(root, i.Folder)
}

// ObjectsPath returns the content subtree created by restructuring.
func (i *Item) ObjectsPath(root string) string {
	return filepath.Join(root, i.Folder, "objects")
}

// MetadataPath returns the metadata subtree created by restructuring.
func (i *Item) MetadataPath(root string) string {
	return filepath.Join(root, i.Folder, "metadata")
}

// MediaInfoName is the extraction output filename for this AIP.
func (i *Item) MediaInfoName() string {
	return i.ID + "_mediainfo.xml"
}

// PreservationName is the derived preservation document filename.
func (i *Item) PreservationName() string {
	return i.ID + "_preservation.xml"
}

// BagName is the folder name after bagging.
func (i *Item) BagName() string {
	return i.ID + "_bag"
}

// DisplayTitle returns the title, falling back to the AIP id when a
// department defers title assignment.
func (i *Item) DisplayTitle() string {
	if title := strings.TrimSpace(i.Title); title != "" {
		return title
	}
	return i.ID
}
