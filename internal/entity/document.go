package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DocumentVersion is one snapshot of a long-text field. A version is created
// once and never mutated or deleted afterwards.
type DocumentVersion struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// VersionedDocument is the full edit history of a long-text field plus a
// pointer to the version currently shown. Versions keep creation order and
// are only ever appended to.
type VersionedDocument struct {
	Versions        []DocumentVersion `json:"versions"`
	ActiveVersionId string            `json:"activeVersionId"`
}

// NewVersionedDocument seeds a document with one empty "Version 1", which is
// active. Every long-text field of a fresh tender starts this way.
func NewVersionedDocument() VersionedDocument {
	v := DocumentVersion{
		Id:        uuid.NewString(),
		Name:      "Version 1",
		Content:   "",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return VersionedDocument{
		Versions:        []DocumentVersion{v},
		ActiveVersionId: v.Id,
	}
}

// ActiveVersion resolves the version the active pointer references. A pointer
// that matches no version falls back to the first one, so a non-empty
// document always resolves.
func (d *VersionedDocument) ActiveVersion() (DocumentVersion, bool) {
	if len(d.Versions) == 0 {
		return DocumentVersion{}, false
	}

	for _, v := range d.Versions {
		if v.Id == d.ActiveVersionId {
			return v, true
		}
	}

	return d.Versions[0], true
}

// ActiveContent is the text of the active version, or "" for a document with
// no versions at all.
func (d *VersionedDocument) ActiveContent() string {
	v, ok := d.ActiveVersion()
	if !ok {
		return ""
	}

	return v.Content
}

// SelectVersion returns a copy of the document with the active pointer moved
// to the given version. No version is created. Selecting an unknown id fails.
func (d *VersionedDocument) SelectVersion(versionId string) (VersionedDocument, error) {
	for _, v := range d.Versions {
		if v.Id == versionId {
			return VersionedDocument{Versions: d.Versions, ActiveVersionId: versionId}, nil
		}
	}

	return VersionedDocument{}, fmt.Errorf("document has no version %s", versionId)
}

// AppendVersion returns a copy of the document with a new version holding the
// given content appended and made active. The display name is derived from
// the version count at the moment of the call, so a document must have a
// single writer. Prior versions are left untouched.
func (d *VersionedDocument) AppendVersion(content string, annotation string) VersionedDocument {
	name := fmt.Sprintf("Version %d", len(d.Versions)+1)
	if annotation != "" {
		name = fmt.Sprintf("%s (%s)", name, annotation)
	}

	v := DocumentVersion{
		Id:        uuid.NewString(),
		Name:      name,
		Content:   content,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	versions := make([]DocumentVersion, 0, len(d.Versions)+1)
	versions = append(versions, d.Versions...)
	versions = append(versions, v)

	return VersionedDocument{
		Versions:        versions,
		ActiveVersionId: v.Id,
	}
}
